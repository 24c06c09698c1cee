package assets

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestTranslator_PortugueseDefault(t *testing.T) {
	tr, err := NewTranslator(DefaultLanguage)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	testutil.AssertEqual(t, "button", tr.Get("Completed"), "Concluído")
	testutil.AssertEqual(t, "title", tr.Get("Interactive Map of Curitiba"), "Mapa Interativo de Curitiba")
	testutil.AssertEqual(t, "placeholder", tr.Get("Image of %s", "Ópera de Arame"), "Imagem de Ópera de Arame")
}

func TestTranslator_English(t *testing.T) {
	tr, err := NewTranslator("en")
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	testutil.AssertEqual(t, "title", tr.Get("Interactive Map of Curitiba"), "Interactive Map of Curitiba")
}

func TestTranslator_UnknownLanguageEchoes(t *testing.T) {
	tr, err := NewTranslator("xx")
	if !errors.Is(err, ErrNoAsset) {
		t.Fatalf("expected ErrNoAsset, got %v", err)
	}
	testutil.AssertEqual(t, "echo", tr.Get("Image of %s", "X"), "Image of X")
	testutil.AssertEqual(t, "lang", tr.Lang(), "xx")
}

func TestLanguages(t *testing.T) {
	testutil.AssertEqual(t, "languages", len(Languages()), 2)
	testutil.AssertEqual(t, "first", Languages()[0], "en")
}
