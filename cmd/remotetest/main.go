package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"m8remote/key"
	"m8remote/remote"
)

func main() {
	addr := flag.String("addr", remote.DefaultAddr, "host remote endpoint (host:port)")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		return
	}

	d := remote.NewDispatcher(remote.NewClient(*addr))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch flag.Arg(0) {
	case "enable":
		err = d.Enable(ctx)
	case "reset":
		err = d.Reset(ctx)
	case "disconnect":
		err = d.Disconnect(ctx)
	case "keys":
		err = walkKeys(ctx, d)
	case "combo":
		err = heldCombo(ctx, d)
	case "delete":
		err = d.PressDelete(ctx)
	default:
		usage()
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func usage() {
	fmt.Println("Remote Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  enable     - Enable the host's device connection")
	fmt.Println("  reset      - Reset the host's device connection")
	fmt.Println("  disconnect - Drop the host's device connection")
	fmt.Println("  keys       - Press each of the eight keys in turn")
	fmt.Println("  combo      - Hold Select while pressing Up (screen switch)")
	fmt.Println("  delete     - Press Edit+Option (delete shortcut)")
	fmt.Println("")
	fmt.Println("Flags:")
	fmt.Println("  -addr      - host remote endpoint, default", remote.DefaultAddr)
}

// walkKeys presses every key once with a short gap so each press is visible
// on the host.
func walkKeys(ctx context.Context, d *remote.Dispatcher) error {
	for _, k := range key.All {
		fmt.Printf("press %s (mask %d)\n", k, uint8(k.Mask()))
		if err := d.SendPress(ctx, k.Mask()); err != nil {
			return fmt.Errorf("press %s: %w", k, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}

// heldCombo exercises the hold bracket: Select stays down across a press
// of Up, then is released even if the press fails.
func heldCombo(ctx context.Context, d *remote.Dispatcher) error {
	fmt.Println("hold Select, press Up, release Select")
	return d.DoWhileHeld(ctx, key.Select.Mask(), func(ctx context.Context) error {
		time.Sleep(100 * time.Millisecond)
		if err := d.SendPress(ctx, key.Up.Mask()); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
		return nil
	})
}
