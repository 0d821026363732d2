// manager_test.go - Tests for storage layer
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func createTestStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewLocalStore(t *testing.T) {
	t.Run("creates store successfully", func(t *testing.T) {
		store := createTestStore(t)

		if store == nil {
			t.Fatal("Expected store to be created")
		}
		if store.uploadDir == "" {
			t.Error("Expected uploadDir to be set")
		}
	})

	t.Run("creates upload directory", func(t *testing.T) {
		uploadDir := filepath.Join(t.TempDir(), "uploads")

		if _, err := NewLocalStore(uploadDir); err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			t.Error("Expected upload directory to be created")
		}
	})
}

func TestLocalStore_Save(t *testing.T) {
	t.Run("saves file from reader", func(t *testing.T) {
		store := createTestStore(t)

		content := "public class ModelAnt extends ModelBase {}"
		info, err := store.Save("ModelAnt.java", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if info.ID == "" {
			t.Error("Expected ID to be set")
		}
		if info.Name != "ModelAnt.java" {
			t.Errorf("Expected name 'ModelAnt.java', got %v", info.Name)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), info.Size)
		}
		if info.Status != "uploaded" {
			t.Errorf("Expected status 'uploaded', got %v", info.Status)
		}
	})

	t.Run("saves empty file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("empty.java", strings.NewReader(""))
		if err != nil {
			t.Fatalf("Failed to save empty file: %v", err)
		}

		if info.Size != 0 {
			t.Errorf("Expected size 0, got %d", info.Size)
		}
	})

	t.Run("creates physical file", func(t *testing.T) {
		store := createTestStore(t)

		content := "ModelRenderer head;"
		info, err := store.Save("ModelAnt.java", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(store.uploadDir, info.ID))
		if err != nil {
			t.Fatalf("Failed to read saved file: %v", err)
		}

		if string(data) != content {
			t.Errorf("Expected content '%s', got '%s'", content, string(data))
		}
	})
}

func TestLocalStore_Get(t *testing.T) {
	t.Run("gets existing file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("ModelAnt.java", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		retrieved, err := store.Get(info.ID)
		if err != nil {
			t.Fatalf("Failed to get file: %v", err)
		}

		if retrieved.ID != info.ID {
			t.Errorf("Expected ID %s, got %s", info.ID, retrieved.ID)
		}
		if retrieved.Name != info.Name {
			t.Errorf("Expected name %s, got %s", info.Name, retrieved.Name)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.Get("non-existent-id"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_List(t *testing.T) {
	t.Run("lists files", func(t *testing.T) {
		store := createTestStore(t)

		for i := 0; i < 5; i++ {
			if _, err := store.Save("file.java", strings.NewReader("content")); err != nil {
				t.Fatalf("Failed to save file: %v", err)
			}
			time.Sleep(10 * time.Millisecond) // Ensure different timestamps
		}

		files, err := store.List(10)
		if err != nil {
			t.Fatalf("Failed to list files: %v", err)
		}

		if len(files) != 5 {
			t.Errorf("Expected 5 files, got %d", len(files))
		}
	})

	t.Run("limits results", func(t *testing.T) {
		store := createTestStore(t)

		for i := 0; i < 10; i++ {
			if _, err := store.Save("file.java", strings.NewReader("content")); err != nil {
				t.Fatalf("Failed to save file: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		files, err := store.List(3)
		if err != nil {
			t.Fatalf("Failed to list files: %v", err)
		}

		if len(files) != 3 {
			t.Errorf("Expected 3 files, got %d", len(files))
		}
	})

	t.Run("sorts by upload time descending", func(t *testing.T) {
		store := createTestStore(t)

		ids := make([]string, 3)
		for i := 0; i < 3; i++ {
			info, err := store.Save("file.java", strings.NewReader("content"))
			if err != nil {
				t.Fatalf("Failed to save file: %v", err)
			}
			ids[i] = info.ID
			time.Sleep(20 * time.Millisecond)
		}

		files, err := store.List(3)
		if err != nil {
			t.Fatalf("Failed to list files: %v", err)
		}

		// Most recent should be the last one saved
		if files[0].ID != ids[2] {
			t.Error("Expected files to be sorted by time descending")
		}
	})
}

func TestLocalStore_Delete(t *testing.T) {
	t.Run("deletes existing file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("ModelAnt.java", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		filePath := filepath.Join(store.uploadDir, info.ID)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Fatal("File should exist before deletion")
		}

		if err := store.Delete(info.ID); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}

		if _, err := store.Get(info.ID); err == nil {
			t.Error("Expected error when getting deleted file")
		}

		if _, err := os.Stat(filePath); !os.IsNotExist(err) {
			t.Error("Physical file should be deleted")
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if err := store.Delete("non-existent-id"); err == nil {
			t.Error("Expected error when deleting non-existent file")
		}
	})
}

func TestLocalStore_Rename(t *testing.T) {
	t.Run("renames existing file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("oldname.java", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		updated, err := store.Rename(info.ID, "newname.java")
		if err != nil {
			t.Fatalf("Failed to rename file: %v", err)
		}

		if updated.Name != "newname.java" {
			t.Errorf("Expected name 'newname.java', got %v", updated.Name)
		}

		retrieved, err := store.Get(info.ID)
		if err != nil {
			t.Fatalf("Failed to get file: %v", err)
		}

		if retrieved.Name != "newname.java" {
			t.Errorf("Expected persisted name 'newname.java', got %v", retrieved.Name)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.Rename("non-existent-id", "newname.java"); err == nil {
			t.Error("Expected error when renaming non-existent file")
		}
	})
}

func TestLocalStore_ReadSource(t *testing.T) {
	t.Run("reads stored source text", func(t *testing.T) {
		store := createTestStore(t)

		content := "public class ModelAnt extends ModelBase { ModelRenderer head; }"
		info, err := store.Save("ModelAnt.java", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		src, err := store.ReadSource(info.ID)
		if err != nil {
			t.Fatalf("Failed to read source: %v", err)
		}

		if src != content {
			t.Errorf("Expected source '%s', got '%s'", content, src)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.ReadSource("non-existent-id"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_SetStatus(t *testing.T) {
	t.Run("updates status", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("ModelAnt.java", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if err := store.SetStatus(info.ID, "converted"); err != nil {
			t.Fatalf("Failed to set status: %v", err)
		}

		retrieved, err := store.Get(info.ID)
		if err != nil {
			t.Fatalf("Failed to get file: %v", err)
		}

		if retrieved.Status != "converted" {
			t.Errorf("Expected status 'converted', got %v", retrieved.Status)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if err := store.SetStatus("non-existent-id", "converted"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_ConcurrentAccess(t *testing.T) {
	t.Run("handles concurrent saves", func(t *testing.T) {
		store := createTestStore(t)

		done := make(chan bool, 10)
		for i := 0; i < 10; i++ {
			go func(n int) {
				content := "Content " + string(rune('0'+n))
				if _, err := store.Save("file.java", strings.NewReader(content)); err != nil {
					t.Errorf("Failed to save file: %v", err)
				}
				done <- true
			}(i)
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		files, err := store.List(20)
		if err != nil {
			t.Fatalf("Failed to list files: %v", err)
		}

		if len(files) != 10 {
			t.Errorf("Expected 10 files, got %d", len(files))
		}
	})
}

// mockReader is a reader that can simulate errors
type mockReader struct {
	data      []byte
	readCount int
	failAfter int
}

func (m *mockReader) Read(p []byte) (n int, err error) {
	if m.readCount >= m.failAfter {
		return 0, io.ErrUnexpectedEOF
	}
	m.readCount++
	n = copy(p, m.data)
	return n, nil
}

func TestLocalStore_ErrorHandling(t *testing.T) {
	t.Run("handles read error during save", func(t *testing.T) {
		store := createTestStore(t)

		reader := &mockReader{
			data:      []byte("data"),
			failAfter: 0,
		}

		if _, err := store.Save("ModelAnt.java", reader); err == nil {
			t.Error("Expected error when reader fails")
		}
	})
}
