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
package settings

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func (m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params, optFns...)
}

type MockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *MockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params, optFns...)
}

type MockS3 struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *MockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

type MockKMS struct {
	DecryptFunc func(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

func (m *MockKMS) Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error) {
	return m.DecryptFunc(ctx, params, optFns...)
}

// --- Testes ---

func TestParameterStoreSource(t *testing.T) {
	ctx := context.Background()

	t.Run("Sucesso", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				assert.Equal(t, "/my-app/secrets", aws.ToString(params.Name))
				assert.True(t, aws.ToBool(params.WithDecryption))
				return &ssm.GetParameterOutput{
					Parameter: &ssmtypes.Parameter{Value: aws.String(`{"SOME_PASSWORD": "xxx-password-xxx"}`)},
				}, nil
			},
		}

		data, err := (&ParameterStoreSource{Client: client, Name: "/my-app/secrets"}).Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"SOME_PASSWORD": "xxx-password-xxx"}, data)
	})

	t.Run("Não é Objeto", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(`["a"]`)}}, nil
			},
		}

		data, err := (&ParameterStoreSource{Client: client, Name: "/x"}).Fetch(ctx)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("JSON Inválido", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(`plain-text`)}}, nil
			},
		}

		_, err := (&ParameterStoreSource{Client: client, Name: "/x"}).Fetch(ctx)
		assert.Error(t, err)
	})

	t.Run("Erro na AWS", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return nil, errors.New("AWS down")
			},
		}

		_, err := (&ParameterStoreSource{Client: client, Name: "/x"}).Fetch(ctx)
		assert.ErrorContains(t, err, "AWS down")
	})
}

func TestSecretsManagerSource(t *testing.T) {
	client := &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "prod/db", aws.ToString(params.SecretId))
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"user":"admin","port":5432}`)}, nil
		},
	}

	data, err := (&SecretsManagerSource{Client: client, SecretID: "prod/db"}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", data["user"])
	assert.Equal(t, 5432.0, data["port"])
}

func TestS3Source(t *testing.T) {
	body := func(s string) io.ReadCloser { return io.NopCloser(bytes.NewBufferString(s)) }

	t.Run("YAML", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "config-bucket", aws.ToString(params.Bucket))
				return &s3.GetObjectOutput{Body: body("SOME_PASSWORD: from-yaml\nMAX_RETRIES: 7\n")}, nil
			},
		}

		s, err := New(&mySettings{}, &S3Source{Client: client, Bucket: "config-bucket", Key: "app/settings.yaml"})
		require.NoError(t, err)
		require.NoError(t, s.LoadSecretSettings(context.Background()))
		assert.Equal(t, "from-yaml", s.Values().SomePassword)
		assert.Equal(t, 7, s.Values().MaxRetries)
	})

	t.Run("JSON", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: body(`{"SOME_PASSWORD":"from-json"}`)}, nil
			},
		}

		data, err := (&S3Source{Client: client, Bucket: "b", Key: "settings.json"}).Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from-json", data["SOME_PASSWORD"])
	})
}

func TestKMSSource(t *testing.T) {
	ciphertext := base64.StdEncoding.EncodeToString([]byte("encrypted-bytes"))

	t.Run("Sucesso", func(t *testing.T) {
		client := &MockKMS{
			DecryptFunc: func(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error) {
				assert.Equal(t, []byte("encrypted-bytes"), params.CiphertextBlob)
				assert.Equal(t, "my-function", params.EncryptionContext["LambdaFunctionName"])
				return &kms.DecryptOutput{Plaintext: []byte(`{"SOME_PASSWORD":"from-kms"}`)}, nil
			},
		}

		src := &KMSSource{
			Client:            client,
			Ciphertext:        ciphertext,
			EncryptionContext: map[string]string{"LambdaFunctionName": "my-function"},
		}
		data, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from-kms", data["SOME_PASSWORD"])
	})

	t.Run("Ciphertext Inválido", func(t *testing.T) {
		_, err := (&KMSSource{Client: &MockKMS{}, Ciphertext: "%%%"}).Fetch(context.Background())
		assert.Error(t, err)
	})
}
