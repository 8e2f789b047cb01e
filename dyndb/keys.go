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
	"time"
)

// Nomes dos atributos de chave do modelo de tabela única.
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrPKGSI1 = "PK_GSI1"
	AttrSKGSI1 = "SK_GSI1"

	// GSI1IndexName é o nome do índice secundário global formado por PK_GSI1/SK_GSI1.
	GSI1IndexName = "GSI1"

	// IdentityField nunca é atribuído em updates; é usado apenas na
	// condição attribute_exists(#id).
	IdentityField = "id"
)

// Valores que, quando usados num campo de um input de update, gravam null
// no atributo correspondente.
//
// NullDateTime é o time.Time zero: um campo time.Time (não ponteiro) deixado
// sem valor num input de update também grava null. Datas opcionais em
// inputs de update devem ser *time.Time (nil = campo ignorado).
var (
	NullString   = ""
	NullDate     = Date{Year: 1, Month: time.January, Day: 1}
	NullDateTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Key monta a chave primária composta.
func Key(pk, sk string) map[string]any {
	return map[string]any{AttrPK: pk, AttrSK: sk}
}
