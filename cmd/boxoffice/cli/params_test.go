// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_Types(t *testing.T) {
	type params struct {
		Seat     string        `flag:"seat,s" desc:"seat prefix"`
		Yes      bool          `flag:"yes,y" desc:"skip confirmation"`
		Limit    int           `flag:"limit" desc:"rows" default:"50"`
		MaxPrice float64       `flag:"max-price" desc:"highest price"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout" default:"15s"`
		Tickets  []string      `flag:"ticket" desc:"ticket ids"`
		Skipped  string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if p.Limit != 50 || p.Timeout != 15*time.Second {
		t.Errorf("defaults not applied: %+v", p)
	}

	err := flagSet.Parse([]string{"-s", "B1", "-y", "--limit", "5", "--max-price", "45.5", "--ticket", "a,b"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Seat != "B1" || !p.Yes || p.Limit != 5 || p.MaxPrice != 45.5 {
		t.Errorf("parsed = %+v", p)
	}
	if strings.Join(p.Tickets, ",") != "a,b" {
		t.Errorf("Tickets = %v", p.Tickets)
	}
	if flagSet.Lookup("Skipped") != nil || flagSet.Lookup("skipped") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Embedded(t *testing.T) {
	type params struct {
		JSONOutput
		ConnectionParams
		UserID string `flag:"user" desc:"user id"`
	}

	var p params
	flagSet := FlagsFromParams("order", &p)
	if err := flagSet.Parse([]string{"--json", "--api-url", "http://localhost:5000", "--user", "u-ada"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON || p.APIURL != "http://localhost:5000" || p.UserID != "u-ada" {
		t.Errorf("parsed = %+v", p)
	}
	for _, name := range []string{"config", "session-file"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("embedded flag --%s missing", name)
		}
	}
}

func TestBindFlags_Rejects(t *testing.T) {
	var notStruct string
	if err := BindFlags(&notStruct, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("expected an error for a non-struct")
	}

	type badDefault struct {
		Limit int `flag:"limit" default:"many"`
	}
	if err := BindFlags(&badDefault{}, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("expected an error for an unparseable default")
	}

	type unsupported struct {
		Ratio complex64 `flag:"ratio"`
	}
	if err := BindFlags(&unsupported{}, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer
	if done, err := output.EmitJSON(&buffer, []string{"x"}); done || err != nil || buffer.Len() != 0 {
		t.Errorf("EmitJSON without --json: done %v, err %v, wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	var rows []string
	done, err := output.EmitJSON(&buffer, rows)
	if !done || err != nil {
		t.Fatalf("EmitJSON: done %v, err %v", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}
