// Package importer 运动目录初始化：表为空时从 JSON 数组批量导入。
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

// DefaultCategory category 缺失时的兜底值
const DefaultCategory = "기타"

var ErrNameRequired = errors.New("exercise name is required")

// Record JSON 中的一条原始记录
type Record struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Difficulty   *string `json:"difficulty"`
	Posture      *string `json:"posture"`
	BodyPart     *string `json:"bodyPart"`
	ThumbnailURL *string `json:"thumbnail_url"`
	URL          *string `json:"url"`
}

type Result struct {
	Loaded     int            `json:"loaded"`
	Imported   int            `json:"imported"`
	Failed     int            `json:"failed"`
	Skipped    bool           `json:"skipped"`
	Categories map[string]int `json:"categories"`
	MinID      uint           `json:"minId"`
	MaxID      uint           `json:"maxId"`
}

// Invalidator 导入完成后清理目录缓存
type Invalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

type Importer struct {
	db        *gorm.DB
	exercises domain.ExerciseRepository
	inv       Invalidator
	log       *zap.Logger
}

// New db 只用于结构修补，可为 nil
func New(db *gorm.DB, exercises domain.ExerciseRepository, inv Invalidator, l *zap.Logger) *Importer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Importer{db: db, exercises: exercises, inv: inv, log: l.Named("importer")}
}

// RunFile 表非空时跳过；结构修补失败只记日志
func (im *Importer) RunFile(ctx context.Context, path string) (*Result, error) {
	n, err := im.exercises.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	if n > 0 {
		im.log.Info("exercise table not empty, import skipped", zap.Int64("rows", n))
		return &Result{Skipped: true}, nil
	}

	im.PatchSchema(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return im.Import(ctx, f)
}

func (im *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	res := &Result{Loaded: len(raws), Categories: map[string]int{}}
	im.log.Info("seed loaded", zap.Int("records", len(raws)))

	items := make([]domain.Exercise, 0, len(raws))
	for i, raw := range raws {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			res.Failed++
			im.log.Warn("skip malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		ex, err := ToExercise(rec)
		if err != nil {
			res.Failed++
			im.log.Warn("skip invalid record", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, *ex)
	}
	im.log.Info("mapping completed", zap.Int("success", len(items)), zap.Int("failed", res.Failed))

	if len(items) == 0 {
		return res, nil
	}
	if err := im.exercises.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("insert exercises: %w", err)
	}
	res.Imported = len(items)
	for i, ex := range items {
		res.Categories[ex.Category]++
		if i == 0 || ex.ID < res.MinID {
			res.MinID = ex.ID
		}
		if ex.ID > res.MaxID {
			res.MaxID = ex.ID
		}
	}
	im.logSummary(res)

	if im.inv != nil {
		if err := im.inv.InvalidateCatalog(ctx); err != nil {
			im.log.Warn("invalidate exercise cache failed", zap.Error(err))
		}
	}
	return res, nil
}

func (im *Importer) logSummary(res *Result) {
	cats := make([]string, 0, len(res.Categories))
	for c := range res.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		im.log.Info("category distribution", zap.String("category", c), zap.Int("exercises", res.Categories[c]))
	}
	im.log.Info("exercise import done",
		zap.Int("imported", res.Imported),
		zap.Uint("min_id", res.MinID),
		zap.Uint("max_id", res.MaxID),
	)
}

// ToExercise 校验并规范化：name 必填，category 兜底，可选字段空白视为缺失
func ToExercise(rec Record) (*domain.Exercise, error) {
	name := trimmed(rec.Name)
	if name == nil {
		return nil, ErrNameRequired
	}
	category := DefaultCategory
	if c := trimmed(rec.Category); c != nil {
		category = *c
	}
	return &domain.Exercise{
		Name:         *name,
		Category:     category,
		Description:  rec.Description,
		Difficulty:   rec.Difficulty,
		Posture:      trimmed(rec.Posture),
		BodyPart:     trimmed(rec.BodyPart),
		ThumbnailURL: rec.ThumbnailURL,
		URL:          trimmed(rec.URL),
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
