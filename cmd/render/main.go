// render genera un documento a partir de un payload JSON sin levantar el servidor.
//
// Uso: go run ./cmd/render -in order.json -out ./out [-format pdf] [-charset windows-1251] [-date 2025-03-05]
// Con -in - lee el payload de stdin. Usa las mismas variables RENDER_* que la API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/docgen-api/internal/application/document"
	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/bootstrap"
	"github.com/jhoicas/docgen-api/pkg/config"
	"github.com/jhoicas/docgen-api/pkg/logger"
)

func main() {
	in := flag.String("in", "order.json", "payload JSON (- para stdin)")
	out := flag.String("out", ".", "directorio de salida")
	format := flag.String("format", "", "docx o pdf; sobrescribe el del payload")
	charset := flag.String("charset", "utf-8", "codificación del payload: utf-8, windows-1251, koi8-r")
	date := flag.String("date", "", "fecha de generación YYYY-MM-DD (por defecto hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	var opts []document.Option
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fecha inválida %q: %v\n", *date, err)
			os.Exit(2)
		}
		opts = append(opts, document.WithClock(func() time.Time { return t }))
	}

	uc, err := bootstrap.NewGenerateUseCase(cfg.App, cfg.Render, log.Zerolog(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inicializar: %v\n", err)
		os.Exit(1)
	}

	req, err := readPayload(*in, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer payload: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		req.Format = *format
	}

	doc, err := uc.Generate(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar documento: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	path := filepath.Join(*out, doc.Filename)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito: %s (%d bytes)\n", path, len(doc.Content))
}

// readPayload lee y decodifica el payload; las exportaciones antiguas llegan en cp1251 o KOI8-R.
func readPayload(path, charset string) (*dto.GenerateRequest, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec.NewDecoder())
	}

	var req dto.GenerateRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", err)
	}
	return &req, nil
}

func decoderFor(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r", "koi8r":
		return charmap.KOI8R, nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}
