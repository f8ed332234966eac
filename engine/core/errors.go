package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes the engine can hit. Callers match
// with errors.Is; errors carrying extra context wrap one of these.
var (
	ErrMemoryAllocation       = errors.New("gpu memory allocation failed")
	ErrNoSuitableMemoryType   = errors.New("no suitable memory type")
	ErrPhysicalDeviceNotValid = errors.New("physical device not sufficient")
	ErrSurfaceCreation        = errors.New("surface creation failed")

	ErrFileNotFound     = errors.New("file not found")
	ErrNotAFile         = errors.New("not a file")
	ErrFileRead         = errors.New("file read failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrFileTooLarge     = errors.New("file too large")
	ErrIncorrectFormat  = errors.New("incorrect format")
	ErrInvalidExtension = errors.New("invalid file extension")

	ErrBackendNotSupported      = errors.New("window backend not supported")
	ErrBackendInit              = errors.New("window backend initialization failed")
	ErrRenderingAPINotSupported = errors.New("rendering API not supported")

	ErrSwapchainOutdated = errors.New("swapchain outdated")
	ErrUnknown           = errors.New("unknown")
)

// VulkanError carries the underlying API status of a failed object creation.
type VulkanError struct {
	Op     string
	Result int32
}

func (e *VulkanError) Error() string {
	return fmt.Sprintf("vulkan object creation failed in %s (result %d)", e.Op, e.Result)
}

// ExtensionNotSupportedError reports a missing instance/device extension or
// validation layer by name.
type ExtensionNotSupportedError struct {
	Name string
}

func (e *ExtensionNotSupportedError) Error() string {
	return fmt.Sprintf("extension or layer not supported: %s", e.Name)
}
