// cmd/dimondcms/main.go
package main

import (
	"context"

	"github.com/dimondcastle/cms/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
