package main

import (
	"accounts/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.BusinessModel{},
		model.UserModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
