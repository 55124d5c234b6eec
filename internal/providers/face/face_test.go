package face

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEncoder struct {
	enc   [][]float64
	calls int
}

func (f *fakeEncoder) Encode(context.Context, *core.Image) ([][]float64, error) {
	f.calls++
	return f.enc, nil
}

func newImage() *core.Image {
	return &core.Image{Data: []byte("jpeg"), MIMEType: "image/jpeg"}
}

func TestFileStorage_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "face_database.json"))
	db, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, db)
}

func TestFileStorage_PutKeepsFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face_database.json")
	s := NewFileStorage(path)

	require.NoError(t, s.Put(context.Background(), "Ana", []float64{0.1, 0.2}))
	require.NoError(t, s.Put(context.Background(), "Luis", []float64{0.3, 0.4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string][]float64
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []float64{0.1, 0.2}, raw["Ana"]["encoding"])
	assert.Len(t, raw, 2)
}

func TestRecognizer_Identify(t *testing.T) {
	ctx := context.Background()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "faces.json"))
	require.NoError(t, storage.Put(ctx, "Ana", []float64{0, 0, 0}))
	require.NoError(t, storage.Put(ctx, "Luis", []float64{1, 1, 1}))

	tests := []struct {
		name    string
		enc     [][]float64
		want    string
		wantErr error
	}{
		{"closest wins", [][]float64{{0.9, 0.9, 1}}, "Luis", nil},
		{"exact", [][]float64{{0, 0, 0}}, "Ana", nil},
		{"outside tolerance", [][]float64{{5, 5, 5}}, "", core.ErrNotRecognized},
		{"no face", nil, "", core.ErrNoFace},
		{"first face only", [][]float64{{0, 0, 0.1}, {1, 1, 1}}, "Ana", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecognizer(&fakeEncoder{enc: tt.enc}, storage, 0)
			got, err := r.Identify(ctx, newImage())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecognizer_DetectThenIdentifyEncodesOnce(t *testing.T) {
	enc := &fakeEncoder{enc: [][]float64{{0, 0}}}
	storage := NewFileStorage(filepath.Join(t.TempDir(), "faces.json"))
	r := NewRecognizer(enc, storage, DefaultTolerance)
	img := newImage()

	ok, err := r.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = r.Identify(context.Background(), img)
	assert.ErrorIs(t, err, core.ErrNotRecognized)
	assert.Equal(t, 1, enc.calls)
}

func TestRecognizer_Register(t *testing.T) {
	ctx := context.Background()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "faces.json"))
	r := NewRecognizer(&fakeEncoder{enc: [][]float64{{0.5, 0.5}}}, storage, DefaultTolerance)

	require.NoError(t, r.Register(ctx, "Marta", newImage()))

	name, err := r.Identify(ctx, newImage())
	require.NoError(t, err)
	assert.Equal(t, "Marta", name)

	empty := NewRecognizer(&fakeEncoder{}, storage, DefaultTolerance)
	assert.ErrorIs(t, empty.Register(ctx, "Pedro", newImage()), core.ErrNoFace)
}

func TestRemoteEncoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/encode", r.URL.Path)
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anBlZw==", req["image"])
		assert.Equal(t, "image/jpeg", req["mime_type"])
		_, _ = w.Write([]byte(`{"encodings": [[0.1, 0.2], [0.3, 0.4]]}`))
	}))
	defer srv.Close()

	enc, err := NewRemoteEncoder(srv.URL+"/", 0).Encode(context.Background(), newImage())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, enc)
}

func TestRemoteEncoder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteEncoder(srv.URL, 0).Encode(context.Background(), newImage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDisabled(t *testing.T) {
	var d Disabled
	ok, err := d.Detect(context.Background(), newImage())
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = d.Identify(context.Background(), newImage())
	assert.ErrorIs(t, err, core.ErrNotRecognized)
}
