package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cify.dev/pkg/cify/internal/domain"
	domainmocks "cify.dev/pkg/cify/internal/domain/mocks"
	m "cify.dev/pkg/cify/internal/model"
)

func newEmbedTestCmd(t *testing.T, mockEmbedder domain.Embedder) (*bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	t.Helper()

	originalEmbedder := embedder
	embedder = mockEmbedder
	t.Cleanup(func() { embedder = originalEmbedder })

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(newEmbedCmd())
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return out, errOut, func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func TestEmbedCmd_WritesToStdoutWithoutDestination(t *testing.T) {
	mockEmbedder := domainmocks.NewMockEmbedder(t)
	out, errOut, run := newEmbedTestCmd(t, mockEmbedder)

	mockEmbedder.On("Embed", mock.Anything, mock.MatchedBy(func(args domain.EmbedArgs) bool {
		return args.Source == m.Path("assets/logo.png") &&
			args.Destination == "" &&
			args.Output == out &&
			!args.KeepPartial
	})).Return(m.Fragment{Source: "assets/logo.png", Symbol: "logo"}, nil)

	require.NoError(t, run("embed", "assets/logo.png"))
	assert.Empty(t, errOut.String())
}

func TestEmbedCmd_PassesDestination(t *testing.T) {
	mockEmbedder := domainmocks.NewMockEmbedder(t)
	_, errOut, run := newEmbedTestCmd(t, mockEmbedder)

	mockEmbedder.On("Embed", mock.Anything, mock.MatchedBy(func(args domain.EmbedArgs) bool {
		return args.Source == m.Path("logo.png") && args.Destination == m.Path("gen/logo.h")
	})).Return(m.Fragment{Source: "logo.png", Destination: "gen/logo.h", Symbol: "logo", Size: 12}, nil)

	require.NoError(t, run("embed", "logo.png", "gen/logo.h"))
	assert.Contains(t, errOut.String(), "wrote g_logo (12 B) to gen/logo.h")
}

func TestEmbedCmd_KeepPartialFlag(t *testing.T) {
	mockEmbedder := domainmocks.NewMockEmbedder(t)
	_, _, run := newEmbedTestCmd(t, mockEmbedder)

	mockEmbedder.On("Embed", mock.Anything, mock.MatchedBy(func(args domain.EmbedArgs) bool {
		return args.KeepPartial
	})).Return(m.Fragment{}, nil)

	require.NoError(t, run("embed", "--keep-partial", "logo.png", "logo.h"))
}

func TestEmbedCmd_PropagatesErrors(t *testing.T) {
	mockEmbedder := domainmocks.NewMockEmbedder(t)
	_, errOut, run := newEmbedTestCmd(t, mockEmbedder)

	embedErr := &domain.EmbedError{Kind: domain.ErrSourceNotFound, Path: "missing.bin"}
	mockEmbedder.On("Embed", mock.Anything, mock.Anything).Return(m.Fragment{}, embedErr)

	err := run("embed", "missing.bin")
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Contains(t, errOut.String(), "source not found: missing.bin")
}

func TestEmbedCmd_ArgumentCount(t *testing.T) {
	for _, args := range [][]string{{"embed"}, {"embed", "a", "b", "c"}} {
		mockEmbedder := domainmocks.NewMockEmbedder(t)
		_, _, run := newEmbedTestCmd(t, mockEmbedder)

		require.Error(t, run(args...), "args %v", args)
		mockEmbedder.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
	}
}

func TestEmbedCmd_EndToEnd(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "test-asset.dat")
	require.NoError(t, os.WriteFile(source, []byte{0x01, 0xFF, 0x00}, 0o644))

	want := "#include <stdint.h>\n\nconst uint8_t g_test_asset[] = {0x01, 0xFF, 0x00, 0x00};\n"

	t.Run("stdout", func(t *testing.T) {
		out, _, run := newEmbedTestCmd(t, domain.NewEmbedder(fsAdapter))

		require.NoError(t, run("embed", source))
		assert.Equal(t, want, out.String())
	})

	t.Run("dash means stdout", func(t *testing.T) {
		out, _, run := newEmbedTestCmd(t, domain.NewEmbedder(fsAdapter))

		require.NoError(t, run("embed", source, "-"))
		assert.Equal(t, want, out.String())
	})

	t.Run("destination in a new directory", func(t *testing.T) {
		out, _, run := newEmbedTestCmd(t, domain.NewEmbedder(fsAdapter))
		destination := filepath.Join(root, "include", "generated", "test_asset.h")

		require.NoError(t, run("embed", source, destination))
		assert.Empty(t, out.String())

		got, err := os.ReadFile(destination)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	})

	t.Run("missing source creates nothing", func(t *testing.T) {
		_, _, run := newEmbedTestCmd(t, domain.NewEmbedder(fsAdapter))
		destination := filepath.Join(root, "never", "created.h")

		err := run("embed", filepath.Join(root, "nope.bin"), destination)
		require.ErrorIs(t, err, domain.ErrSourceNotFound)

		_, statErr := os.Stat(filepath.Dir(destination))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestNewEmbedCmd(t *testing.T) {
	cmd := newEmbedCmd()

	assert.Equal(t, "embed <source-file> [destination-file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, embedLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup(keepPartialFlagName))
}
