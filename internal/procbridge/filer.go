package procbridge

import (
	"fmt"
	"sync"
)

// GeneratedSource is one source file a processor asked the Filer to
// create, pending re-parse at the top of the next round.
type GeneratedSource struct {
	Filename string
	Content  string
}

// Filer enforces §4.3.5's once-only invariant: "a source file name may be
// generated only once across all rounds; re-generation fails with a filer
// error." One Filer instance spans the entire round loop, not just one
// round, so the uniqueness check is global.
type Filer struct {
	mu      sync.Mutex
	created map[string]bool
	pending []GeneratedSource
}

func newFiler() *Filer {
	return &Filer{created: map[string]bool{}}
}

// CreateSourceFile registers filename as generated with the given source
// text. It fails if filename was already generated in this or any prior
// round.
func (f *Filer) CreateSourceFile(filename, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created[filename] {
		return fmt.Errorf("filer: %q was already generated in an earlier round", filename)
	}
	f.created[filename] = true
	f.pending = append(f.pending, GeneratedSource{Filename: filename, Content: content})
	return nil
}

// drainSources returns and clears the sources generated since the last
// drain, for the round loop to re-parse into the next round's unit set.
func (f *Filer) drainSources() []GeneratedSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	return out
}
