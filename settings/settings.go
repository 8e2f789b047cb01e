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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/fast-lambda-toolkit/envloader"
	"github.com/raywall/fast-lambda-toolkit/pkg/logger"
)

// TagSecret é a tag dos campos preenchidos a partir do blob de segredos.
const TagSecret = "secret"

// DefaultMaxAge é o tempo de cache dos segredos.
const DefaultMaxAge = 30 * time.Minute

// ErrNoSource é retornado quando segredos são solicitados sem origem configurada.
var ErrNoSource = errors.New("settings: no secret source configured")

// SecretSource devolve o blob de segredos já decodificado.
type SecretSource interface {
	Fetch(ctx context.Context) (map[string]any, error)
}

// Settings envolve a struct de configuração da aplicação.
type Settings[T any] struct {
	mu       sync.Mutex
	values   *T
	source   SecretSource
	maxAge   time.Duration
	now      func() time.Time
	loadedAt time.Time
	validate *validator.Validate
}

// Option configura um Settings.
type Option func(*options)

type options struct {
	maxAge time.Duration
	now    func() time.Time
}

// WithMaxAge define por quanto tempo os segredos ficam em cache.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxAge = d
		}
	}
}

// WithClock substitui o relógio (usado em testes).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New carrega os campos `env` de values e devolve o Settings.
// source pode ser nil quando a aplicação não usa segredos.
func New[T any](values *T, source SecretSource, opts ...Option) (*Settings[T], error) {
	o := options{maxAge: DefaultMaxAge, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if err := envloader.Load(values); err != nil {
		return nil, fmt.Errorf("settings: load environment failed: %w", err)
	}

	return &Settings[T]{
		values:   values,
		source:   source,
		maxAge:   o.maxAge,
		now:      o.now,
		validate: validator.New(),
	}, nil
}

// Values devolve a struct de configuração.
func (s *Settings[T]) Values() *T {
	return s.values
}

// MaxAge devolve o tempo de cache configurado.
func (s *Settings[T]) MaxAge() time.Duration {
	return s.maxAge
}

// LoadedAt devolve o instante da última carga de segredos (zero se nunca carregados).
func (s *Settings[T]) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// IsSecretLoadRequired informa se os segredos nunca foram carregados ou se
// o cache expirou (agora > carregado_em + MaxAge).
func (s *Settings[T]) IsSecretLoadRequired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRequired()
}

func (s *Settings[T]) loadRequired() bool {
	if s.loadedAt.IsZero() {
		return true
	}
	return s.now().After(s.loadedAt.Add(s.maxAge))
}

// LoadSecretSettings busca o blob na origem e preenche os campos `secret`,
// mas apenas quando IsSecretLoadRequired é verdadeiro. Valores ausentes,
// nulos ou vazios no blob mantêm o valor atual do campo.
func (s *Settings[T]) LoadSecretSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loadRequired() {
		return nil
	}
	return s.load(ctx)
}

// Reload ignora o cache e busca os segredos imediatamente. Usado quando
// uma rotação de segredo é notificada.
func (s *Settings[T]) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Settings[T]) load(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}

	log := logger.ForComponent("settings")

	secrets, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("settings: fetch secrets failed: %w", err)
	}

	if err := envloader.LoadWith(s.values, TagSecret, envloader.MapLookup(secrets)); err != nil {
		return fmt.Errorf("settings: apply secrets failed: %w", err)
	}

	s.loadedAt = s.now()
	log.Debug().Int("keys", len(secrets)).Time("loaded_at", s.loadedAt).Msg("Secrets loaded")
	return nil
}

// Validate executa as regras `validate` da struct de configuração.
func (s *Settings[T]) Validate() error {
	if err := s.validate.Struct(s.values); err != nil {
		return fmt.Errorf("settings: invalid configuration: %w", err)
	}
	return nil
}
