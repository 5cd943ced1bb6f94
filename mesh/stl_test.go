package mesh

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"
)

func TestSTLRoundTrip(t *testing.T) {
	want := FromTriangles([]Triangle{
		{{}, {X: 1}, {Y: 1}},
		{{}, {Y: 1}, {Z: 1.5}},
		{{}, {Z: 1.5}, {X: 1}},
		{{X: 1}, {Z: 1.5}, {Y: 1}},
	}, 0)

	var buf bytes.Buffer
	if err := WriteSTL(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSTL(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.NumFaces() != want.NumFaces() {
		t.Fatalf("got %d faces, want %d", got.NumFaces(), want.NumFaces())
	}
	gb, wb := got.Bounds(), want.Bounds()
	for _, d := range []float64{
		gb.Min.X - wb.Min.X, gb.Min.Y - wb.Min.Y, gb.Min.Z - wb.Min.Z,
		gb.Max.X - wb.Max.X, gb.Max.Y - wb.Max.Y, gb.Max.Z - wb.Max.Z,
	} {
		if math.Abs(d) > 1e-6 {
			t.Fatalf("bounds drifted beyond float32 rounding: got %+v, want %+v", gb, wb)
		}
	}
}

func TestWriteSTLRefusesEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, Mesh{}); err == nil {
		t.Error("empty mesh written without error")
	}
}

func TestReadSTLRejectsTruncated(t *testing.T) {
	m := FromTriangles([]Triangle{{{}, {X: 1}, {Y: 1}}}, 0)
	var buf bytes.Buffer
	if err := WriteSTL(&buf, m); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-10]
	if _, err := ReadSTL(bytes.NewReader(truncated)); err == nil {
		t.Error("truncated STL accepted")
	}
}

func TestWriteSTLFile(t *testing.T) {
	m := FromTriangles([]Triangle{{{}, {X: 1}, {Y: 1}}}, 0)
	path := filepath.Join(t.TempDir(), "tri.stl")
	if err := WriteSTLFile(path, m); err != nil {
		t.Fatal(err)
	}
	if err := WriteSTLFile(filepath.Join(t.TempDir(), "missing", "tri.stl"), m); err == nil {
		t.Error("write into missing directory succeeded")
	}
}

var benchMesh = func() Mesh {
	var soup []Triangle
	for i := 0; i < 512; i++ {
		x := float64(i)
		soup = append(soup, Triangle{{X: x}, {X: x + 1}, {X: x, Y: 1}})
	}
	return FromTriangles(soup, 0)
}()

func BenchmarkWriteSTL(b *testing.B) {
	var buf bytes.Buffer
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := WriteSTL(&buf, benchMesh); err != nil {
			b.Fatal(err)
		}
	}
}
