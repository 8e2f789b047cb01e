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
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound – item inexistente para a chave informada
	ErrItemNotFound = errors.New("dyndb: item not found")
	// ErrMultipleItemsFound – a consulta deveria retornar um único item
	ErrMultipleItemsFound = errors.New("dyndb: multiple items found")
	// ErrItemAlreadyExists – criação condicional sobre um item existente
	ErrItemAlreadyExists = errors.New("dyndb: item already exists")
	// ErrEmptyUpdate – o input não possui nenhum campo para atualizar
	ErrEmptyUpdate = errors.New("dyndb: nothing to update")
	// ErrUnknownField – Set recebeu um campo que não pertence ao input
	ErrUnknownField = errors.New("dyndb: unknown field")
)

// ItemNotFoundError identifica a chave composta que não foi encontrada.
type ItemNotFoundError struct {
	PK string
	SK string
}

// Error ex: "Item not found PK: TEST#1, SK: TEST#1"
func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("Item not found PK: %s, SK: %s", e.PK, e.SK)
}

func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// UnknownField devolve um erro ErrUnknownField para o campo informado.
func UnknownField(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}
