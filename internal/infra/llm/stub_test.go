package llm

import (
	"context"
	"testing"
)

func TestStubProvider_Generate_FixedAnswer(t *testing.T) {
	t.Parallel()

	p := NewStubProvider()
	a, err := p.Generate(context.Background(), "anything at all")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _ := p.Generate(context.Background(), "something else entirely")
	if a != b {
		t.Error("stub must return the same fixed answer regardless of prompt")
	}
	if a == "" {
		t.Error("stub answer must not be empty")
	}
}

func TestStubProvider_Embed_Deterministic(t *testing.T) {
	t.Parallel()

	p := NewStubProvider()
	a, err := p.Embed(context.Background(), []string{"block my lost card"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	b, _ := p.Embed(context.Background(), []string{"block my lost card"})
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatal("identical texts must produce identical vectors")
		}
	}
	if len(a[0]) != stubEmbedDim {
		t.Errorf("expected %d dims, got %d", stubEmbedDim, len(a[0]))
	}
}

func TestStubProvider_Embed_SharedVocabularyScoresCloser(t *testing.T) {
	t.Parallel()

	p := NewStubProvider()
	vecs, err := p.Embed(context.Background(), []string{
		"block lost card",
		"block lost debit card",
		"kyc address proof documents",
	})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	near := dot(vecs[0], vecs[1])
	far := dot(vecs[0], vecs[2])
	if near <= far {
		t.Errorf("expected overlapping vocabulary to score higher: near=%v far=%v", near, far)
	}
}

func TestStubProvider_HealthCheck_AlwaysHealthy(t *testing.T) {
	t.Parallel()

	if err := NewStubProvider().HealthCheck(context.Background()); err != nil {
		t.Errorf("stub healthcheck must never fail, got %v", err)
	}
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
