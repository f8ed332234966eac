package core

import "fmt"

// Identifier is a composed 64-bit id. The low 32 bits are a dense index
// into whatever pool issued the id; the high 32 bits are the generation of
// that index. A stale id (its generation no longer matches the pool's) can
// never resolve to a live object.
type Identifier uint64

const InvalidID Identifier = ^Identifier(0)

func ComposeID(index, generation uint32) Identifier {
	return Identifier(uint64(generation)<<32 | uint64(index))
}

func (id Identifier) Index() uint32 {
	return uint32(id)
}

func (id Identifier) Generation() uint32 {
	return uint32(id >> 32)
}

func (id Identifier) String() string {
	return fmt.Sprintf("%d@%d", id.Index(), id.Generation())
}

// IDPool issues composed identifiers. Freed indices are recycled with an
// incremented generation so previously issued ids for the same index stop
// resolving.
type IDPool struct {
	generations []uint32
	freeList    []uint32
	alive       []bool
}

func NewIDPool() *IDPool {
	return &IDPool{}
}

// Acquire returns a fresh id. The most recently freed index is reused
// first; otherwise the pool grows by one slot.
func (p *IDPool) Acquire() Identifier {
	var index uint32
	if n := len(p.freeList); n > 0 {
		index = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
	} else {
		index = uint32(len(p.generations))
		p.generations = append(p.generations, 0)
		p.alive = append(p.alive, false)
	}
	p.alive[index] = true
	return ComposeID(index, p.generations[index])
}

// Release invalidates id. Releasing a stale or unknown id is an error so
// double frees surface during development.
func (p *IDPool) Release(id Identifier) error {
	index := id.Index()
	if int(index) >= len(p.generations) {
		return fmt.Errorf("id pool: index %d out of range (size=%d)", index, len(p.generations))
	}
	if !p.alive[index] || p.generations[index] != id.Generation() {
		return fmt.Errorf("id pool: stale id %s", id)
	}
	p.alive[index] = false
	p.generations[index]++
	p.freeList = append(p.freeList, index)
	return nil
}

// Exists reports whether id is still current.
func (p *IDPool) Exists(id Identifier) bool {
	index := id.Index()
	if int(index) >= len(p.generations) {
		return false
	}
	return p.alive[index] && p.generations[index] == id.Generation()
}

// IDAt recovers the current id for a live index.
func (p *IDPool) IDAt(index uint32) (Identifier, bool) {
	if int(index) >= len(p.generations) || !p.alive[index] {
		return InvalidID, false
	}
	return ComposeID(index, p.generations[index]), true
}

// Size returns the number of slots the pool has ever issued.
func (p *IDPool) Size() int {
	return len(p.generations)
}

// AliveCount returns the number of currently valid ids.
func (p *IDPool) AliveCount() int {
	count := 0
	for _, a := range p.alive {
		if a {
			count++
		}
	}
	return count
}
