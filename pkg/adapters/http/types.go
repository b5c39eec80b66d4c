package http

import (
	"encoding/json"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/aretw0/automata/internal/dto"
)

// Input accepts either a JSON array of symbols or one space-separated string.
type Input []string

func (in *Input) UnmarshalJSON(data []byte) error {
	var symbols []string
	if err := json.Unmarshal(data, &symbols); err == nil {
		*in = symbols
		return nil
	}
	var line string
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	*in = strings.Fields(line)
	return nil
}

func (in *Input) UnmarshalCBOR(data []byte) error {
	var symbols []string
	if err := cbor.Unmarshal(data, &symbols); err == nil {
		*in = symbols
		return nil
	}
	var line string
	if err := cbor.Unmarshal(data, &line); err != nil {
		return err
	}
	*in = strings.Fields(line)
	return nil
}

// RunRequest is the body of POST /machines/{name}/run.
type RunRequest struct {
	Input Input `json:"input" cbor:"input"`
}

// SimulateRequest is the body of POST /simulate. Source is a machine description
// in any supported format; Filename is an optional format and kind hint.
type SimulateRequest struct {
	Source   string `json:"source" cbor:"source"`
	Filename string `json:"filename,omitempty" cbor:"filename,omitempty"`
	Input    Input  `json:"input" cbor:"input"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Source   string `json:"source" cbor:"source"`
	Filename string `json:"filename,omitempty" cbor:"filename,omitempty"`
}

// ValidateResponse reports whether a description passed every check.
type ValidateResponse struct {
	Valid bool   `json:"valid" cbor:"valid"`
	Kind  string `json:"kind,omitempty" cbor:"kind,omitempty"`
	Check string `json:"check,omitempty" cbor:"check,omitempty"`
	Error string `json:"error,omitempty" cbor:"error,omitempty"`
}

// MachineResponse describes a stored machine with its validation status.
type MachineResponse struct {
	*dto.Machine
	Valid bool   `json:"valid" cbor:"valid"`
	Error string `json:"error,omitempty" cbor:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" cbor:"error"`
	Check string `json:"check,omitempty" cbor:"check,omitempty"`
}
