package skill

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjc-lp/xlbench/internal/anthropic"
	"go.uber.org/mock/gomock"
)

func writeBundle(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xl-skill.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestGetOrCreate_ExistingSkill(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := anthropic.NewMockAPI(ctrl)

	api.EXPECT().ListSkills(gomock.Any(), "custom").Return([]anthropic.Skill{
		{ID: "skill_other", DisplayTitle: "something-else"},
		{ID: "skill_xl", DisplayTitle: DisplayTitle},
	}, nil)

	id, err := GetOrCreate(context.Background(), api, "ignored.zip")
	require.NoError(t, err)
	assert.Equal(t, "skill_xl", id)
}

func TestGetOrCreate_CreatesFromBundle(t *testing.T) {
	bundle := writeBundle(t, map[string]string{
		"SKILL.md":       "# xl skill",
		"scripts/run.sh": "#!/bin/sh",
	})

	ctrl := gomock.NewController(t)
	api := anthropic.NewMockAPI(ctrl)
	api.EXPECT().ListSkills(gomock.Any(), "custom").Return(nil, nil)

	var uploaded []anthropic.SkillFile
	api.EXPECT().CreateSkill(gomock.Any(), DisplayTitle, gomock.Any()).DoAndReturn(
		func(ctx context.Context, title string, files []anthropic.SkillFile) (*anthropic.Skill, error) {
			uploaded = files
			return &anthropic.Skill{ID: "skill_new", DisplayTitle: title}, nil
		})

	id, err := GetOrCreate(context.Background(), api, bundle)
	require.NoError(t, err)
	assert.Equal(t, "skill_new", id)

	require.Len(t, uploaded, 2)
	paths := map[string]string{}
	for _, f := range uploaded {
		paths[f.Path] = string(f.Data)
	}
	// Every entry is rooted under the display title.
	assert.Equal(t, "# xl skill", paths["xl-cli/SKILL.md"])
	assert.Equal(t, "#!/bin/sh", paths["xl-cli/scripts/run.sh"])
}

func TestGetOrCreate_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := anthropic.NewMockAPI(ctrl)
	api.EXPECT().ListSkills(gomock.Any(), "custom").Return(nil, errors.New("boom"))

	_, err := GetOrCreate(context.Background(), api, "ignored.zip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing custom skills")
}

func TestReadBundle_Errors(t *testing.T) {
	t.Run("missing bundle", func(t *testing.T) {
		_, err := readBundle(filepath.Join(t.TempDir(), "absent.zip"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening bundle")
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.zip")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
		_, err := readBundle(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading bundle zip")
	})

	t.Run("traversal entry", func(t *testing.T) {
		bundle := writeBundle(t, map[string]string{"../escape.sh": "rm -rf"})
		_, err := readBundle(bundle)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes the archive root")
	})

	t.Run("empty bundle", func(t *testing.T) {
		bundle := writeBundle(t, nil)
		_, err := readBundle(bundle)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contains no files")
	})
}
