//go:build tools

package tools

import (
	_ "github.com/air-verse/air"
	_ "github.com/google/wire/cmd/wire"
	_ "go.uber.org/mock/mockgen"
)
