package qrcode

import (
	"encoding/json"
	"strings"
)

// ScanResult is the normalized outcome of parsing a scanned payload. Exactly
// one of the two shapes applies: Parsed carries the badge identity fields,
// Unparsed carries the raw text for payloads no decoder recognized.
type ScanResult struct {
	Parsed   *ParsedPayload
	Unparsed *UnparsedPayload
}

type ParsedPayload struct {
	EmployeeID string
	Email      string
	Name       string
}

type UnparsedPayload struct {
	RawText string
}

func (r ScanResult) EmployeeID() string {
	if r.Parsed != nil {
		return r.Parsed.EmployeeID
	}
	return ""
}

// rawPayload tolerates both badge QR codes ("employeeId") and the older
// profile QR codes ("userId") still in circulation.
type rawPayload struct {
	EmployeeID string `json:"employeeId"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Text       string `json:"text"`
}

// ParsePayload normalizes the shapes scanner clients send: a JSON object, a
// JSON-encoded string, or free text with a JSON object embedded somewhere in
// it (third-party lens apps wrap the code content in extra text). Anything
// else comes back as Unparsed raw text.
func ParsePayload(raw json.RawMessage) ScanResult {
	if len(raw) == 0 {
		return ScanResult{Unparsed: &UnparsedPayload{}}
	}

	// A JSON string value: unwrap once, then treat the content as the payload.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return parseText(asString)
	}

	var p rawPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		if res, ok := fromRaw(p); ok {
			return res
		}
		// An object with only stray text: look for JSON embedded in it.
		if p.Text != "" {
			return parseText(p.Text)
		}
	}

	return ScanResult{Unparsed: &UnparsedPayload{RawText: string(raw)}}
}

func parseText(text string) ScanResult {
	var p rawPayload
	if err := json.Unmarshal([]byte(text), &p); err == nil {
		if res, ok := fromRaw(p); ok {
			return res
		}
	}

	// Extract an embedded object between the first '{' and the last '}'.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &p); err == nil {
			if res, ok := fromRaw(p); ok {
				return res
			}
		}
	}

	return ScanResult{Unparsed: &UnparsedPayload{RawText: text}}
}

func fromRaw(p rawPayload) (ScanResult, bool) {
	id := p.EmployeeID
	if id == "" {
		id = p.UserID
	}
	if id == "" {
		return ScanResult{}, false
	}
	return ScanResult{Parsed: &ParsedPayload{
		EmployeeID: id,
		Email:      p.Email,
		Name:       p.Name,
	}}, true
}
