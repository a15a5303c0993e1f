package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	e := &env{}
	err := newRootCmd(e).ExecuteContext(context.Background())
	if cerr := e.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
