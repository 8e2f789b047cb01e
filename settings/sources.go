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
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Interfaces para abstrair o SDK da AWS (permite mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type KMSClient interface {
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// ParameterStoreSource lê um parâmetro SecureString do SSM contendo JSON.
type ParameterStoreSource struct {
	Client SSMClient
	Name   string
}

func (p *ParameterStoreSource) Fetch(ctx context.Context) (map[string]any, error) {
	out, err := p.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.Name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ssm get parameter %s failed: %w", p.Name, err)
	}
	if out.Parameter == nil {
		return map[string]any{}, nil
	}
	return decodeJSONObject(p.Name, []byte(aws.ToString(out.Parameter.Value)))
}

// SecretsManagerSource lê um segredo JSON do Secrets Manager.
type SecretsManagerSource struct {
	Client   SecretsClient
	SecretID string
}

func (s *SecretsManagerSource) Fetch(ctx context.Context) (map[string]any, error) {
	out, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.SecretID),
	})
	if err != nil {
		return nil, fmt.Errorf("secretsmanager get secret %s failed: %w", s.SecretID, err)
	}
	if out.SecretString != nil {
		return decodeJSONObject(s.SecretID, []byte(*out.SecretString))
	}
	return decodeJSONObject(s.SecretID, out.SecretBinary)
}

// S3Source lê um objeto de configuração do S3. Chaves terminadas em
// .yaml/.yml são decodificadas como YAML; as demais como JSON.
type S3Source struct {
	Client S3Client
	Bucket string
	Key    string
}

func (s *S3Source) Fetch(ctx context.Context) (map[string]any, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object s3://%s/%s failed: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read object failed: %w", err)
	}

	switch strings.ToLower(path.Ext(s.Key)) {
	case ".yaml", ".yml":
		var data any
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode yaml %s failed: %w", s.Key, err)
		}
		return asObject(s.Key, data), nil
	default:
		return decodeJSONObject(s.Key, raw)
	}
}

// KMSSource decifra um blob base64 criptografado com KMS (ex: uma variável
// de ambiente criptografada no console da Lambda) contendo JSON.
type KMSSource struct {
	Client     KMSClient
	Ciphertext string
	// EncryptionContext deve ser o mesmo usado na criptografia.
	EncryptionContext map[string]string
}

func (k *KMSSource) Fetch(ctx context.Context) (map[string]any, error) {
	blob, err := base64.StdEncoding.DecodeString(k.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("kms ciphertext is not base64: %w", err)
	}

	out, err := k.Client.Decrypt(ctx, &kms.DecryptInput{
		CiphertextBlob:    blob,
		EncryptionContext: k.EncryptionContext,
	})
	if err != nil {
		return nil, fmt.Errorf("kms decrypt failed: %w", err)
	}
	return decodeJSONObject("kms", out.Plaintext)
}

// MapSource devolve um mapa fixo. Útil em testes e execução local.
type MapSource map[string]any

func (m MapSource) Fetch(context.Context) (map[string]any, error) {
	return m, nil
}

func decodeJSONObject(name string, raw []byte) (map[string]any, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode json %s failed: %w", name, err)
	}
	return asObject(name, data), nil
}

// asObject aceita apenas objetos; qualquer outro valor resulta em mapa vazio.
func asObject(name string, data any) map[string]any {
	if m, ok := data.(map[string]any); ok {
		return m
	}
	log := logger.ForComponent("settings")
	log.Warn().Str("source", name).Msgf("secret blob is not an object (%T), ignoring", data)
	return map[string]any{}
}
