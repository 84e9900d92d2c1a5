//go:build tinygo

package sonar

import "fmt"

func NodeStore(n Noder) error {
	if n.TestFlag(NodeFlagMetal) {
		fmt.Printf("NODESTORE - not implemented\r\n")
	}
	return nil
}

func NodeRestore(n Noder) error {
	if n.TestFlag(NodeFlagMetal) {
		fmt.Printf("NODERESTORE - not implemented\r\n")
	}
	return nil
}
