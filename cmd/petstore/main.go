// Command petstore calls Petstore operations by id from the command line.
//
//	petstore ops
//	petstore call findPetsByStatus --param status=available,sold
//	petstore call getPetById -p petId=7 --observe response --format yaml
//	petstore login --token "$TOKEN" --ttl 1h
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/petstore-client/pkg/httpclient"
)

const usage = `usage: petstore <command> [flags]

commands:
  ops      list the operations the client can dispatch
  call     invoke an operation by id
  login    store a bearer token for later calls
  logout   remove the stored bearer token
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(os.Stderr, "petstore: server answered %d\n%s\n", statusErr.StatusCode, statusErr.Body)
		} else {
			fmt.Fprintf(os.Stderr, "petstore: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "ops":
		return runOps(rest, stdout)
	case "call":
		return runCall(ctx, rest, stdout)
	case "login":
		return runLogin(rest, stdout)
	case "logout":
		return runLogout(rest, stdout)
	case "help", "-h", "--help":
		_, err := io.WriteString(stdout, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}
