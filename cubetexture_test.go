package raster

import "testing"

func TestNewCubeTextureRejectsMismatch(t *testing.T) {
	sq := solidTexture(4, 4, White)
	rect := solidTexture(4, 2, White)
	if _, err := NewCubeTexture(sq, sq, sq, sq, sq, rect); err != ErrCubeFaceMismatch {
		t.Fatalf("err = %v, want ErrCubeFaceMismatch", err)
	}
}

func TestNewCubeTextureRejectsNonSquare(t *testing.T) {
	rect := solidTexture(4, 2, White)
	if _, err := NewCubeTexture(rect, rect, rect, rect, rect, rect); err != ErrCubeFaceMismatch {
		t.Fatalf("err = %v, want ErrCubeFaceMismatch", err)
	}
}

func TestNewCubeTextureAccepts(t *testing.T) {
	sq := solidTexture(4, 4, White)
	cube, err := NewCubeTexture(sq, sq, sq, sq, sq, sq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cube.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", cube.Size())
	}
}

func TestSelectFacePosX(t *testing.T) {
	face, u, v := SelectFace(1, 0, 0)
	if face != FacePosX {
		t.Fatalf("face = %v, want FacePosX", face)
	}
	if u != 0.5 || v != 0.5 {
		t.Fatalf("uv = (%v,%v), want (0.5,0.5)", u, v)
	}
}

func TestSelectFaceNegZ(t *testing.T) {
	face, _, _ := SelectFace(0, 0, -1)
	if face != FaceNegZ {
		t.Fatalf("face = %v, want FaceNegZ", face)
	}
}

func TestSelectFaceTieBreakXOverY(t *testing.T) {
	face, _, _ := SelectFace(1, 1, 0)
	if face != FacePosX {
		t.Fatalf("tie between X and Y should favor X, got %v", face)
	}
}

func TestSelectFaceTieBreakYOverZ(t *testing.T) {
	face, _, _ := SelectFace(0, 1, 1)
	if face != FacePosY {
		t.Fatalf("tie between Y and Z should favor Y, got %v", face)
	}
}
