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
//
// Package invoke chama outras funções Lambda (assíncrona ou sincronamente)
// e executa state machines Express do Step Functions de forma síncrona.
package invoke

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// LambdaInvoker abstrai o cliente Lambda (permite mocking).
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

var successCodes = map[lambdatypes.InvocationType]int32{
	lambdatypes.InvocationTypeEvent:           202,
	lambdatypes.InvocationTypeRequestResponse: 200,
}

// InvokeAsync dispara a função com InvocationType "Event".
func InvokeAsync(ctx context.Context, client LambdaInvoker, functionName string, payload any) error {
	_, err := invoke(ctx, client, functionName, payload, lambdatypes.InvocationTypeEvent)
	return err
}

// InvokeSync chama a função com InvocationType "RequestResponse" e
// decodifica a resposta JSON em `out` (ignorado quando nil).
func InvokeSync(ctx context.Context, client LambdaInvoker, functionName string, payload, out any) error {
	resp, err := invoke(ctx, client, functionName, payload, lambdatypes.InvocationTypeRequestResponse)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("invoke: decode response of %s failed: %w", functionName, err)
	}
	return nil
}

func invoke(
	ctx context.Context,
	client LambdaInvoker,
	functionName string,
	payload any,
	invocationType lambdatypes.InvocationType,
) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("invoke: encode payload failed: %w", err)
	}

	out, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: invocationType,
		Payload:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke: %s failed: %w", functionName, err)
	}

	if out.StatusCode != successCodes[invocationType] || aws.ToString(out.FunctionError) != "" {
		log := logger.ForComponent("invoke")
		log.Error().
			Str("function_name", functionName).
			Int32("status_code", out.StatusCode).
			Str("function_error", aws.ToString(out.FunctionError)).
			Bytes("response_payload", out.Payload).
			RawJSON("payload", body).
			Msg("Invoke lambda function failed")

		return nil, &InvokeFunctionError{
			FunctionName:  functionName,
			StatusCode:    out.StatusCode,
			FunctionError: aws.ToString(out.FunctionError),
		}
	}

	return out.Payload, nil
}
