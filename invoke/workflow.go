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
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	sfntypes "github.com/aws/aws-sdk-go-v2/service/sfn/types"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// WorkflowStarter abstrai o cliente Step Functions (permite mocking).
type WorkflowStarter interface {
	StartSyncExecution(ctx context.Context, params *sfn.StartSyncExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartSyncExecutionOutput, error)
}

// StartSyncWorkflow executa uma state machine Express de forma síncrona.
// Com status SUCCEEDED o output é decodificado em `out`; caso contrário o
// campo cause ({"errorMessage", "errorType"}) vira um *WorkflowError.
func StartSyncWorkflow(ctx context.Context, client WorkflowStarter, input any, stateMachineArn string, out any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("invoke: encode workflow input failed: %w", err)
	}

	resp, err := client.StartSyncExecution(ctx, &sfn.StartSyncExecutionInput{
		StateMachineArn: aws.String(stateMachineArn),
		Input:           aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("invoke: start workflow %s failed: %w", stateMachineArn, err)
	}

	if resp.Status != sfntypes.SyncExecutionStatusSucceeded {
		wfErr := workflowError(resp)
		log := logger.ForComponent("invoke")
		log.Error().
			Str("state_machine_arn", stateMachineArn).
			Str("status", string(resp.Status)).
			Str("error_type", wfErr.Type).
			Msg("Workflow failed")
		return wfErr
	}

	if out == nil || aws.ToString(resp.Output) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(aws.ToString(resp.Output)), out); err != nil {
		return fmt.Errorf("invoke: decode workflow output failed: %w", err)
	}
	return nil
}

func workflowError(resp *sfn.StartSyncExecutionOutput) *WorkflowError {
	var cause struct {
		ErrorMessage string `json:"errorMessage"`
		ErrorType    string `json:"errorType"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(resp.Cause)), &cause); err == nil && cause.ErrorType != "" {
		return &WorkflowError{Type: cause.ErrorType, Message: cause.ErrorMessage}
	}

	// cause fora do formato de erro de Lambda: usa os campos crus
	errType := aws.ToString(resp.Error)
	if errType == "" {
		errType = string(resp.Status)
	}
	return &WorkflowError{Type: errType, Message: aws.ToString(resp.Cause)}
}
