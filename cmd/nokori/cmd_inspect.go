package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/nokori/framing"
	"github.com/dhamidi/nokori/stream"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode an LSP traffic dump and summarize each message",
		Long: "Inspect reads a recorded language-server session (the raw bytes " +
			"of either direction) and prints one line per JSON-RPC message, " +
			"using the frame decoder to recover message boundaries.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer f.Close()
			return runInspect(f, os.Stdout)
		},
	}
}

type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func runInspect(in io.Reader, out io.Writer) error {
	dec := stream.NewDecoder(in, framing.Message())
	n := 0
	for {
		frame, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			fmt.Fprintf(out, "-- %d messages, %d bytes\n", n, dec.Offset())
			return nil
		}
		if err != nil {
			return fmt.Errorf("message %d: %w", n+1, err)
		}
		n++

		var msg rpcMessage
		if err := json.Unmarshal(frame.Payload, &msg); err != nil {
			fmt.Fprintf(out, "%4d  %d bytes, not JSON-RPC: %v\n", n, frame.Length, err)
			continue
		}
		fmt.Fprintf(out, "%4d  %s\n", n, describeMessage(&msg))
	}
}

func describeMessage(msg *rpcMessage) string {
	switch {
	case msg.Method == "":
		if msg.Error != nil {
			return fmt.Sprintf("response id=%v error=%s", msg.ID, msg.Error)
		}
		return fmt.Sprintf("response id=%v (%d bytes)", msg.ID, len(msg.Result))
	case msg.ID != nil:
		return fmt.Sprintf("request id=%v %s%s", msg.ID, msg.Method, describeParams(msg))
	default:
		return fmt.Sprintf("notification %s%s", msg.Method, describeParams(msg))
	}
}

// describeParams decodes the parameter shapes of the common document
// lifecycle methods, so a dump reads as "what the editor did" rather
// than raw JSON.
func describeParams(msg *rpcMessage) string {
	switch msg.Method {
	case "initialize":
		var params protocol.InitializeParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		switch {
		case params.RootURI != nil && *params.RootURI != "":
			return fmt.Sprintf(" root=%s", *params.RootURI)
		case params.RootPath != nil && *params.RootPath != "":
			return fmt.Sprintf(" root=%s", *params.RootPath)
		}
	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		return fmt.Sprintf(" %s (%s, %d bytes)",
			params.TextDocument.URI, params.TextDocument.LanguageID, len(params.TextDocument.Text))
	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		return fmt.Sprintf(" %s (%d changes)", params.TextDocument.URI, len(params.ContentChanges))
	case "textDocument/didSave":
		var params protocol.DidSaveTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		return fmt.Sprintf(" %s", params.TextDocument.URI)
	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		return fmt.Sprintf(" %s", params.TextDocument.URI)
	case "textDocument/completion":
		var params protocol.CompletionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return ""
		}
		return fmt.Sprintf(" %s:%d:%d",
			params.TextDocument.URI, params.Position.Line, params.Position.Character)
	}
	return ""
}
