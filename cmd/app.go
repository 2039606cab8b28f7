package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/config"
	"github.com/jmehdipour/lead-gateway/internal/dispatcher"
	"github.com/jmehdipour/lead-gateway/internal/logger"
	"github.com/jmehdipour/lead-gateway/internal/model"
	"github.com/jmehdipour/lead-gateway/internal/service/lead"
	"github.com/jmehdipour/lead-gateway/internal/validation"
)

// app holds what every subcommand needs.
type app struct {
	cfg   config.Config
	leads *lead.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Encoding)

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("message timezone: %w", err)
	}

	disp, err := dispatcher.New(cfg.Dispatcher())
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}

	v := validation.New(func() time.Time { return time.Now().In(loc) })

	return &app{
		cfg:   cfg,
		leads: lead.New(v, disp, loc, logger.Log),
	}, nil
}

// readSubmission decodes one JSON record from path, or stdin for "-".
func readSubmission(path string) (model.Submission, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return model.Submission{}, err
		}
		defer f.Close()
		r = f
	}

	var sub model.Submission
	if err := json.NewDecoder(r).Decode(&sub); err != nil {
		return model.Submission{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return sub, nil
}

func printFieldErrors(w io.Writer, errs model.FieldErrors) {
	for _, fe := range errs {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}
