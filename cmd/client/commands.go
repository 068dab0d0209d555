package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
	errBadArguments   = errors.New("wrong number of arguments")
)

// run executes one command against client and prints its result as JSON.
func run(ctx context.Context, client adapter.AccountsClient, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errNoCommand
	}

	command, args := args[0], args[1:]
	var (
		result any
		err    error
	)

	switch command {
	case "version":
		if err = wantArgs(args, 0, 0); err != nil {
			return err
		}
		var version string
		version, err = client.Version(ctx)
		result = map[string]string{"version": version}
	case "login":
		if err = wantArgs(args, 2, 2); err != nil {
			return err
		}
		result, err = client.Login(ctx, args[0], args[1])
	case "me":
		result, err = client.Me(ctx)
	case "refresh":
		result, err = client.RefreshToken(ctx)
	case "create":
		if err = wantArgs(args, 2, 3); err != nil {
			return err
		}
		user := models.UserCreate{Email: args[0], Password: args[1]}
		if len(args) == 3 {
			user.Role = models.Role(args[2])
		}
		result, err = client.CreateUser(ctx, user)
	case "get":
		var id int64
		if id, err = idArg(args); err != nil {
			return err
		}
		result, err = client.GetUser(ctx, id)
	case "list":
		var req models.ListRequest
		if req, err = listArgs(args); err != nil {
			return err
		}
		result, err = client.ListUsers(ctx, req)
	case "disable", "enable":
		var id int64
		if id, err = idArg(args); err != nil {
			return err
		}
		disabled := command == "disable"
		result, err = client.UpdateUser(ctx, id, models.UserUpdate{Disabled: &disabled})
	case "delete":
		var id int64
		if id, err = idArg(args); err != nil {
			return err
		}
		err = client.DeleteUser(ctx, id)
		result = map[string]int64{"deleted": id}
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func wantArgs(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: got %d", errBadArguments, len(args))
	}
	return nil
}

func idArg(args []string) (int64, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	return id, nil
}

// listArgs reads optional offset and limit. The limit defaults to the
// server maximum.
func listArgs(args []string) (models.ListRequest, error) {
	req := models.ListRequest{Limit: validators.MaxListLimit}
	if err := wantArgs(args, 0, 2); err != nil {
		return req, err
	}

	var err error
	if len(args) > 0 {
		if req.Offset, err = strconv.ParseUint(args[0], 10, 64); err != nil {
			return req, fmt.Errorf("invalid offset %q: %w", args[0], err)
		}
	}
	if len(args) > 1 {
		if req.Limit, err = strconv.ParseUint(args[1], 10, 64); err != nil {
			return req, fmt.Errorf("invalid limit %q: %w", args[1], err)
		}
	}
	return req, nil
}
