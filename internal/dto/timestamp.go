package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// localDateTime is an ISO 8601 datetime without an offset, read as UTC.
const localDateTime = "2006-01-02T15:04:05.999999999"

// ParseTimestamp accepts RFC 3339 and offset-less ISO 8601 datetimes. The
// latter are taken to be UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(localDateTime, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: expected ISO 8601, e.g. 2030-05-11T10:00:00Z", s)
	}
	return t, nil
}

// timestamp decodes a JSON string through ParseTimestamp. null leaves it zero.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (req *CreateReservationRequest) UnmarshalJSON(b []byte) error {
	type plain CreateReservationRequest
	var aux struct {
		plain
		StartTime timestamp `json:"startTime"`
		EndTime   timestamp `json:"endTime"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*req = CreateReservationRequest(aux.plain)
	req.StartTime = aux.StartTime.Time
	req.EndTime = aux.EndTime.Time
	return nil
}

func (req *UpdateReservationRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateReservationRequest
	var aux struct {
		plain
		StartTime timestamp `json:"startTime"`
		EndTime   timestamp `json:"endTime"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*req = UpdateReservationRequest(aux.plain)
	req.StartTime = aux.StartTime.Time
	req.EndTime = aux.EndTime.Time
	return nil
}
