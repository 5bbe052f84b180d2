package server_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-gangz/mcp-template/server"
	"github.com/d-gangz/mcp-template/transport/stdio"
	"github.com/d-gangz/mcp-template/types"
)

// TestDispatcherOverStdioTransport exercises the full path: newline-delimited
// JSON in, dispatcher, newline-delimited JSON out, including malformed-line
// skipping at the transport layer.
func TestDispatcherOverStdioTransport(t *testing.T) {
	inReader, inWriter := io.Pipe()
	outReader, outWriter := io.Pipe()

	tr := stdio.NewTransportWithReadWriter(inReader, outWriter, types.TransportOptions{})
	d := server.NewDispatcher(newAddRegistry(t), tr)

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	go func() {
		io.WriteString(inWriter, "not json at all\n")
		io.WriteString(inWriter, `{"id":"1","op":"add-numbers","params":{"a":2,"b":3}}`+"\n")
		io.WriteString(inWriter, `{"id":"2","op":"add-numbers","params":{"a":10,"b":-4}}`+"\n")
		inWriter.Close()
	}()

	scanner := bufio.NewScanner(outReader)
	responses := make(map[string]testResponse)
	for i := 0; i < 2; i++ {
		require.True(t, scanner.Scan(), "expected a response line")
		var resp testResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses[resp.ID.(string)] = resp
	}

	first := responses["1"]
	assert.False(t, first.IsError)
	assert.Equal(t, "The sum of 2 and 3 is 5", first.Content[0].Text)

	second := responses["2"]
	assert.False(t, second.IsError)
	assert.Equal(t, "The sum of 10 and -4 is 6", second.Content[0].Text)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not shut down after EOF")
	}
	outWriter.Close()
}
