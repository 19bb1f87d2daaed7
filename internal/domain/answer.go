package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is a player's reply to a question. The set is closed.
type Response string

const (
	ResponseYes       Response = "Yes"
	ResponseSomewhat  Response = "Somewhat"
	ResponseNotReally Response = "NotReally"
	ResponseNo        Response = "No"
	ResponseDontKnow  Response = "DontKnow"
)

func ValidResponse(r Response) bool {
	switch r {
	case ResponseYes, ResponseSomewhat, ResponseNotReally, ResponseNo, ResponseDontKnow:
		return true
	}
	return false
}

// responseOrdinals matches the numeric encoding the web client sends.
var responseOrdinals = [...]Response{
	ResponseYes,
	ResponseSomewhat,
	ResponseNotReally,
	ResponseNo,
	ResponseDontKnow,
}

// UnmarshalJSON accepts either the string form ("Yes") or the ordinal form
// (0-4) used by the browser frontend.
func (r *Response) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed := Response(s)
		if !ValidResponse(parsed) {
			return fmt.Errorf("invalid response %q", s)
		}
		*r = parsed
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid response %s", data)
	}
	if n < 0 || n >= len(responseOrdinals) {
		return fmt.Errorf("invalid response ordinal %d", n)
	}
	*r = responseOrdinals[n]
	return nil
}

// Answer records one reply within a session. Category and TargetAttribute are
// snapshots taken from the question at record time; an Answer never changes
// once stored.
type Answer struct {
	QuestionID      string   `json:"question_id"`
	Category        string   `json:"category"`
	TargetAttribute string   `json:"target_attribute"`
	Response        Response `json:"response"`
}
