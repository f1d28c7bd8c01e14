// Package patch applies quick codes to stored save images.
//
// It wires the pieces together: load the save once, decode the code
// text, run the interpreter, and persist the mutated image only when
// the whole run succeeded. A run that fails at any instruction leaves
// the stored save untouched — the in-memory buffer may be half mutated,
// but it is discarded.
package patch

import (
	"github.com/tliron/commonlog"

	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/storage"
	"github.com/chazu/quickcode/vm"
)

var log = commonlog.GetLogger("quickcode.patch")

// Patcher applies quick codes to saves held in a Store.
type Patcher struct {
	Store storage.Store

	// DryRun executes codes without persisting the result.
	DryRun bool
}

// New creates a Patcher over the given store.
func New(store storage.Store) *Patcher {
	return &Patcher{Store: store}
}

// Apply patches the named save with the given quick code text. The
// save is loaded once, the program executed in full, and the result
// persisted once on success. Decode and execution errors leave the
// stored save untouched; storage failures surface as *storage.IOError.
func (p *Patcher) Apply(resource, codes string) error {
	prog, err := code.Parse(codes)
	if err != nil {
		log.Errorf("decode failed for %q: %s", resource, err.Error())
		return err
	}

	buf, err := p.Store.Load(resource)
	if err != nil {
		return err
	}
	log.Infof("applying %d lines to %q (%d bytes)", len(prog), resource, len(buf))

	if err := vm.Run(buf, prog); err != nil {
		log.Errorf("run failed for %q: %s", resource, err.Error())
		return err
	}

	if p.DryRun {
		log.Infof("dry run, not persisting %q", resource)
		return nil
	}
	if err := p.Store.Persist(resource, buf); err != nil {
		return err
	}
	log.Infof("persisted %q", resource)
	return nil
}
