package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type banner struct{}

func (banner) JSON() string {
	return `{"app":"bstviz","desc":"animated binary search tree"}`
}

func (banner) PlainText() string {
	return `
 _         _        _
| |__  ___| |___ __(_)____
| '_ \/ __| __\ \ / / |_  /
| |_) \__ \ |_ \ V /| |/ /
|_.__/|___/\__| \_/ |_/___|
`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bstviz: %v\n", err)
		stop()
		os.Exit(1)
	}
}
