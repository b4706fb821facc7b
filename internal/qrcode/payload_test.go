package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePayload_Object(t *testing.T) {
	raw := json.RawMessage(`{"employeeId":"42","email":"a@b.com","name":"Abhi"}`)

	res := ParsePayload(raw)
	assert.NotNil(t, res.Parsed)
	assert.Nil(t, res.Unparsed)
	assert.Equal(t, "42", res.Parsed.EmployeeID)
	assert.Equal(t, "a@b.com", res.Parsed.Email)
	assert.Equal(t, "Abhi", res.Parsed.Name)
}

func TestParsePayload_LegacyUserID(t *testing.T) {
	raw := json.RawMessage(`{"userId":"7","timestamp":"2024-01-01T00:00:00Z"}`)

	res := ParsePayload(raw)
	assert.NotNil(t, res.Parsed)
	assert.Equal(t, "7", res.Parsed.EmployeeID)
}

func TestParsePayload_JSONString(t *testing.T) {
	raw := json.RawMessage(`"{\"employeeId\":\"42\",\"email\":\"a@b.com\",\"name\":\"Abhi\"}"`)

	res := ParsePayload(raw)
	assert.NotNil(t, res.Parsed)
	assert.Equal(t, "42", res.Parsed.EmployeeID)
}

func TestParsePayload_EmbeddedJSONInText(t *testing.T) {
	// Third-party lens apps prepend and append noise around the code content
	raw := json.RawMessage(`{"text":"scanned with lens: {\"employeeId\":\"42\",\"email\":\"a@b.com\",\"name\":\"Abhi\"} (copied)"}`)

	res := ParsePayload(raw)
	assert.NotNil(t, res.Parsed)
	assert.Equal(t, "42", res.Parsed.EmployeeID)
	assert.Equal(t, "a@b.com", res.Parsed.Email)
}

func TestParsePayload_OpaqueText(t *testing.T) {
	raw := json.RawMessage(`"just some text"`)

	res := ParsePayload(raw)
	assert.Nil(t, res.Parsed)
	assert.NotNil(t, res.Unparsed)
	assert.Equal(t, "just some text", res.Unparsed.RawText)
	assert.Empty(t, res.EmployeeID())
}

func TestParsePayload_Empty(t *testing.T) {
	res := ParsePayload(nil)
	assert.NotNil(t, res.Unparsed)
}

func TestCodec_GenerateRoundTrip(t *testing.T) {
	c := NewCodec()

	dataURL, err := c.Generate("42", "a@b.com", "Abhi")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	// The embedded payload parses back to the same identity fields
	payload, err := json.Marshal(BadgePayload{EmployeeID: "42", Email: "a@b.com", Name: "Abhi", Timestamp: 1})
	assert.NoError(t, err)
	res := ParsePayload(payload)
	assert.NotNil(t, res.Parsed)
	assert.Equal(t, "42", res.Parsed.EmployeeID)
	assert.Equal(t, "a@b.com", res.Parsed.Email)
	assert.Equal(t, "Abhi", res.Parsed.Name)
}
