// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dyndb

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date é uma data de calendário sem horário nem fuso.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate cria uma Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extrai a data de t no fuso do próprio t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate lê o formato ISO "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("dyndb: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String ex: "2021-01-01"
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time devolve a meia-noite UTC da data.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

const (
	dateTimeLayout       = "2006-01-02T15:04:05-07:00"
	dateTimeLayoutMicros = "2006-01-02T15:04:05.000000-07:00"
)

// FormatDateTime converte t para UTC no formato ISO-8601 com offset
// explícito: "2021-01-01T13:30:00+00:00". Microssegundos só aparecem
// quando diferentes de zero.
func FormatDateTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateTimeLayoutMicros)
}

// ParseDateTime aceita RFC3339 ("Z" ou "+00:00") e, sem fuso, assume UTC.
// O resultado é sempre normalizado para UTC.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("dyndb: invalid datetime %q: %w", s, err)
	}
	return t, nil
}
