package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// statusShape tags which upstream convention a status response follows.
type statusShape int

const (
	// shapeEmpty carries neither outputs nor a single output, e.g. a
	// cutout that is still pending.
	shapeEmpty statusShape = iota
	// shapeMultiOutput is used by Lightroom and Photoshop document
	// operations: an outputs array with a status per output.
	shapeMultiOutput
	// shapeSingleOutput is used by cutout and mask: top-level input,
	// status, output and errors fields.
	shapeSingleOutput
)

// statusResponse is a decoded status (or initiate) response.
type statusResponse struct {
	shape    statusShape
	url      string
	jobID    string
	created  string
	modified string
	outputs  []JobOutput
	single   singleOutput
}

type singleOutput struct {
	input  string
	status JobStatus
	output any
	errors any
}

type statusLinks struct {
	Self *struct {
		Href string `json:"href"`
	} `json:"self"`
}

// decodeStatus decodes a raw response into a statusResponse. A JSON string
// is the legacy initiate shape and is taken as the status URL itself.
func decodeStatus(raw []byte) (statusResponse, error) {
	var resp statusResponse

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return resp, nil
	}

	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &resp.url); err != nil {
			return resp, fmt.Errorf("decode status url: %w", err)
		}
		return resp, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return resp, fmt.Errorf("decode status response: %w", err)
	}

	if rawLinks, ok := fields["_links"]; ok {
		var links statusLinks
		if err := json.Unmarshal(rawLinks, &links); err == nil && links.Self != nil {
			resp.url = links.Self.Href
		}
	}

	// The service spells the identifier both ways depending on the API family.
	resp.jobID = stringField(fields, "jobId")
	if resp.jobID == "" {
		resp.jobID = stringField(fields, "jobID")
	}
	resp.created = stringField(fields, "created")
	resp.modified = stringField(fields, "modified")

	_, hasOutput := fields["output"]
	_, hasErrors := fields["errors"]

	switch {
	case fields["outputs"] != nil:
		resp.shape = shapeMultiOutput
		if err := json.Unmarshal(fields["outputs"], &resp.outputs); err != nil {
			return resp, fmt.Errorf("decode outputs: %w", err)
		}
	case hasOutput || hasErrors:
		resp.shape = shapeSingleOutput
		resp.single.input = stringField(fields, "input")
		resp.single.status = JobStatus(stringField(fields, "status"))
		if hasOutput {
			if err := json.Unmarshal(fields["output"], &resp.single.output); err != nil {
				return resp, fmt.Errorf("decode output: %w", err)
			}
		}
		if hasErrors {
			if err := json.Unmarshal(fields["errors"], &resp.single.errors); err != nil {
				return resp, fmt.Errorf("decode errors: %w", err)
			}
		}
	default:
		resp.shape = shapeEmpty
	}

	return resp, nil
}

// jobOutputs normalizes either response shape into the canonical output list,
// back-filling root-level timestamps onto every output.
func (r statusResponse) jobOutputs() []JobOutput {
	var outputs []JobOutput
	switch r.shape {
	case shapeMultiOutput:
		outputs = make([]JobOutput, len(r.outputs))
		copy(outputs, r.outputs)
	case shapeSingleOutput:
		out := JobOutput{
			Input:  r.single.input,
			Status: r.single.status,
			Errors: r.single.errors,
		}
		if r.single.output != nil {
			out.Links = &Links{Self: r.single.output}
		}
		outputs = []JobOutput{out}
	default:
		outputs = []JobOutput{}
	}

	for i := range outputs {
		if r.created != "" {
			outputs[i].Created = r.created
		}
		if r.modified != "" {
			outputs[i].Modified = r.modified
		}
	}

	return outputs
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
