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
package notification

import (
	"time"
)

// DisplayLayout ex: "29 Oct 2021, 12:45 PM (BST)"
const DisplayLayout = "02 Jan 2006, 15:04 PM (MST)"

var london = mustLoadLocation("Europe/London")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ToNotificationDisplayDatetime formata o instante no horário de Londres
// (GMT/BST) para exibição nos templates de e-mail.
func ToNotificationDisplayDatetime(t time.Time) string {
	return t.In(london).Format(DisplayLayout)
}
