package main

import (
	"context"
	"fmt"

	"reportserver"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(reportserver.Version)
	return nil
}
