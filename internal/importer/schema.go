package importer

import (
	"context"

	"go.uber.org/zap"

	"synergym-api/internal/domain"
)

// PatchSchema 幂等：补齐旧表缺失的列，并把主键序列重置到 1（仅在导入空表前调用）
func (im *Importer) PatchSchema(ctx context.Context) {
	if im.db == nil {
		return
	}
	db := im.db.WithContext(ctx)
	m := db.Migrator()
	model := &domain.Exercise{}

	for _, field := range []string{"Category", "URL"} {
		if m.HasColumn(model, field) {
			continue
		}
		if err := m.AddColumn(model, field); err != nil {
			im.log.Warn("add column failed", zap.String("field", field), zap.Error(err))
			continue
		}
		im.log.Info("column added", zap.String("table", model.TableName()), zap.String("field", field))
	}

	var stmt string
	switch db.Dialector.Name() {
	case "postgres":
		stmt = `ALTER SEQUENCE exercises_id_seq RESTART WITH 1`
	case "mysql":
		stmt = "ALTER TABLE exercises AUTO_INCREMENT = 1"
	default:
		im.log.Warn("sequence reset not supported", zap.String("dialect", db.Dialector.Name()))
		return
	}
	if err := db.Exec(stmt).Error; err != nil {
		im.log.Warn("reset id sequence failed", zap.Error(err))
		return
	}
	im.log.Info("id sequence reset", zap.String("dialect", db.Dialector.Name()))
}
