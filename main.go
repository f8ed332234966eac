/*
Testbed entry point: boots the engine with the example game and runs the
main loop until the window closes.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/aurora/engine"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/testbed"
)

func main() {
	tb, err := testbed.NewTestGame()
	if err != nil {
		panic(err)
	}

	app, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := app.Initialize(); err != nil {
		panic(err)
	}

	// A termination signal requests a clean quit through the event queue
	// so teardown still runs on the primary thread.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		core.EventPost(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	if err := app.Run(); err != nil {
		panic(err)
	}
	if err := app.Shutdown(); err != nil {
		panic(err)
	}
}
