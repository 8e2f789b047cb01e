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
package envloader

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StringFields(t *testing.T) {
	type Config struct {
		EnvName   string `env:"ENV_NAME" envDefault:"dev"`
		TableName string `env:"TABLE_NAME" envDefault:"default-table-name"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "dev", config.EnvName)
	assert.Equal(t, "default-table-name", config.TableName)

	t.Setenv("ENV_NAME", "local")
	t.Setenv("TABLE_NAME", "test_table")

	config2 := &Config{}
	require.NoError(t, Load(config2))
	assert.Equal(t, "local", config2.EnvName)
	assert.Equal(t, "test_table", config2.TableName)
}

func TestLoad_KeepsCurrentValueWhenUnset(t *testing.T) {
	type Config struct {
		Password string `env:"SOME_PASSWORD"`
	}

	config := &Config{Password: "TBA"}
	require.NoError(t, Load(config))
	assert.Equal(t, "TBA", config.Password)

	t.Setenv("SOME_PASSWORD", "")
	require.NoError(t, Load(config))
	assert.Equal(t, "TBA", config.Password)
}

func TestLoad_NumericAndBoolFields(t *testing.T) {
	type Config struct {
		Port    int     `env:"PORT" envDefault:"8080"`
		MaxConn int32   `env:"MAX_CONNECTIONS" envDefault:"100"`
		Size    uint64  `env:"MAX_FILE_SIZE" envDefault:"1048576"`
		Ratio   float64 `env:"RATIO" envDefault:"1.5"`
		Debug   bool    `env:"DEBUG" envDefault:"true"`
	}

	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "FALSE")

	config := &Config{}
	require.NoError(t, Load(config))

	assert.Equal(t, 9090, config.Port)
	assert.Equal(t, int32(100), config.MaxConn)
	assert.Equal(t, uint64(1048576), config.Size)
	assert.Equal(t, 1.5, config.Ratio)
	assert.False(t, config.Debug)
}

func TestLoad_DurationSliceAndTime(t *testing.T) {
	type Config struct {
		MaxAge   time.Duration `env:"SECRETS_MAX_AGE" envDefault:"30m"`
		Timeout  time.Duration `env:"TIMEOUT"`
		Origins  []string      `env:"ALLOWED_ORIGINS"`
		Deadline time.Time     `env:"DEADLINE"`
	}

	t.Setenv("TIMEOUT", "45")
	t.Setenv("ALLOWED_ORIGINS", "a.com, b.com,,")
	t.Setenv("DEADLINE", "2021-03-17T04:45:30Z")

	config := &Config{}
	require.NoError(t, Load(config))

	assert.Equal(t, 30*time.Minute, config.MaxAge)
	assert.Equal(t, 45*time.Second, config.Timeout)
	assert.Equal(t, []string{"a.com", "b.com"}, config.Origins)
	assert.Equal(t, time.Date(2021, 3, 17, 4, 45, 30, 0, time.UTC), config.Deadline)
}

func TestLoad_NestedStruct(t *testing.T) {
	type Database struct {
		Host string `env:"DB_HOST" envDefault:"localhost"`
	}
	type AppConfig struct {
		Database Database
		Cache    *Database
		Name     string `env:"APP_NAME" envDefault:"MyApp"`
	}

	t.Setenv("DB_HOST", "db.example.com")

	config := &AppConfig{}
	require.NoError(t, Load(config))
	assert.Equal(t, "db.example.com", config.Database.Host)
	require.NotNil(t, config.Cache)
	assert.Equal(t, "db.example.com", config.Cache.Host)
	assert.Equal(t, "MyApp", config.Name)
}

func TestLoad_InvalidConfig(t *testing.T) {
	var config string
	err := Load(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")

	var config2 int
	err = Load(&config2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pointer to struct")

	err = Load(nil)
	assert.Error(t, err)
}

func TestLoad_ConversionErrors(t *testing.T) {
	type Config struct {
		Port int `env:"PORT" envDefault:"not-a-number"`
	}

	err := Load(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error setting field Port")

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "PORT", fieldErr.Key)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestLoad_UnsupportedType(t *testing.T) {
	type Config struct {
		Values map[string]string `env:"VALUES" envDefault:"x"`
	}

	err := Load(&Config{})
	var unsupported *UnsupportedTypeError
	assert.True(t, errors.As(err, &unsupported))
}

func TestLoadWith_MapLookup(t *testing.T) {
	type Secrets struct {
		Password string  `secret:"SOME_PASSWORD"`
		Retries  int     `secret:"RETRIES"`
		Rate     float64 `secret:"RATE"`
		Enabled  bool    `secret:"ENABLED"`
		Missing  string  `secret:"MISSING" secretDefault:"fallback"`
		Empty    string  `secret:"EMPTY"`
		Ignored  string  `env:"SOME_PASSWORD"`
	}

	values := map[string]any{
		"SOME_PASSWORD": "xxx-password-xxx",
		"RETRIES":       float64(1000000),
		"RATE":          0.25,
		"ENABLED":       true,
		"EMPTY":         "",
	}

	s := &Secrets{Empty: "keep"}
	require.NoError(t, LoadWith(s, "secret", MapLookup(values)))

	assert.Equal(t, "xxx-password-xxx", s.Password)
	assert.Equal(t, 1000000, s.Retries)
	assert.Equal(t, 0.25, s.Rate)
	assert.True(t, s.Enabled)
	assert.Equal(t, "fallback", s.Missing)
	assert.Equal(t, "keep", s.Empty)
	assert.Equal(t, "", s.Ignored)
}

func TestMustLoad(t *testing.T) {
	type Config struct {
		Port string `env:"PORT" envDefault:"8080"`
	}

	config := &Config{}
	assert.NotPanics(t, func() { MustLoad(config) })
	assert.Equal(t, "8080", config.Port)

	assert.Panics(t, func() { MustLoad("not-a-pointer") })
}
