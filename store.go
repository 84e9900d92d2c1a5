//go:build !tinygo

package sonar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StoreDir is where node state is persisted
var StoreDir = "."

func storeName(n Noder) string {
	return filepath.Join(StoreDir, n.Model()+"-"+n.Id())
}

// NodeStore saves a metal node's exported state as JSON
func NodeStore(n Noder) error {
	if !n.TestFlag(NodeFlagMetal) {
		return nil
	}
	bytes, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return os.WriteFile(storeName(n), bytes, 0600)
}

// NodeRestore loads a metal node's state saved by NodeStore.  If there is
// nothing saved yet, the node's current state is saved instead.
func NodeRestore(n Noder) error {
	if !n.TestFlag(NodeFlagMetal) {
		return nil
	}
	bytes, err := os.ReadFile(storeName(n))
	if os.IsNotExist(err) {
		return NodeStore(n)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bytes, n); err != nil {
		return fmt.Errorf("restoring %s: %w", n, err)
	}
	return nil
}
