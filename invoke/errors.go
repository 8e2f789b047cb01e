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
package invoke

import (
	"errors"
	"fmt"
)

// ErrInvokeFailed é o sentinel comparável com errors.Is para falhas de invocação.
var ErrInvokeFailed = errors.New("invoke: function invocation failed")

// InvokeFunctionError indica que a função chamada devolveu um status
// inesperado ou reportou FunctionError.
type InvokeFunctionError struct {
	FunctionName  string
	StatusCode    int32
	FunctionError string
}

func (e *InvokeFunctionError) Error() string {
	return fmt.Sprintf("Invoke function failed: %s", e.FunctionName)
}

func (e *InvokeFunctionError) Is(target error) bool {
	return target == ErrInvokeFailed
}

// WorkflowError carrega o erro reportado por uma execução síncrona do
// Step Functions que não terminou com SUCCEEDED.
type WorkflowError struct {
	Type    string
	Message string
}

// Error ex: "OopsError: Oops"
func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}
