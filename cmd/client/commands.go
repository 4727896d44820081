package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/obesitrack/internal/adapter"
	"github.com/MKhiriev/obesitrack/models"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
)

const usage = `usage: obesitrack-client <command> [flags]

commands:
  register -email E -password P [-name N]
  login    -email E -password P      prints the access token
  me
  predict  [-file questionnaire.json] reads stdin when -file is omitted
  history  [-limit N] [-offset N]
  health
  version

Authenticated commands read the token from ADAPTER_TOKEN or -token.`

// run dispatches one sub-command and writes its JSON result to out.
func run(ctx context.Context, api adapter.ServerAdapter, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return errNoCommand
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	token := fs.String("token", "", "bearer token (overrides ADAPTER_TOKEN)")

	var result any
	switch cmd {
	case "register":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		name := fs.String("name", "", "full name")
		if err := fs.Parse(args); err != nil {
			return err
		}

		req := models.RegisterRequest{Email: *email, Password: *password}
		if *name != "" {
			req.FullName = name
		}
		created, err := api.Register(ctx, req)
		if err != nil {
			return err
		}
		result = created

	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args); err != nil {
			return err
		}

		tok, err := api.Login(ctx, models.LoginRequest{Username: *email, Password: *password})
		if err != nil {
			return err
		}
		result = tok

	case "me":
		if err := parseWithToken(fs, args, api, token); err != nil {
			return err
		}
		me, err := api.Me(ctx)
		if err != nil {
			return err
		}
		result = me

	case "predict":
		file := fs.String("file", "", "questionnaire JSON file")
		if err := parseWithToken(fs, args, api, token); err != nil {
			return err
		}

		req, err := readQuestionnaire(*file, in)
		if err != nil {
			return err
		}
		prediction, err := api.Predict(ctx, req)
		if err != nil {
			return err
		}
		result = prediction

	case "history":
		limit := fs.Int("limit", 0, "page size (server default when 0)")
		offset := fs.Int("offset", 0, "rows to skip")
		if err := parseWithToken(fs, args, api, token); err != nil {
			return err
		}

		items, err := api.History(ctx, *limit, *offset)
		if err != nil {
			return err
		}
		result = items

	case "health":
		if err := fs.Parse(args); err != nil {
			return err
		}
		status, err := api.Health(ctx)
		if err != nil {
			return err
		}
		result = status

	default:
		fmt.Fprintln(out, usage)
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}

	return printJSON(out, result)
}

func parseWithToken(fs *flag.FlagSet, args []string, api adapter.ServerAdapter, token *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token != "" {
		api.SetToken(*token)
	}
	return nil
}

func readQuestionnaire(path string, stdin io.Reader) (models.PredictionRequest, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = io.ReadAll(stdin)
	}
	if err != nil {
		return models.PredictionRequest{}, fmt.Errorf("read questionnaire: %w", err)
	}

	var req models.PredictionRequest
	if err = json.Unmarshal(raw, &req); err != nil {
		return models.PredictionRequest{}, fmt.Errorf("decode questionnaire: %w", err)
	}
	return req, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
