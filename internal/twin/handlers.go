package twin

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

const maxUploadBytes = 10 << 20

func (s *Server) addPet(w http.ResponseWriter, r *http.Request) {
	pet, err := decodePet(r)
	if err != nil {
		writeError(w, r, http.StatusMethodNotAllowed, "Invalid input")
		return
	}
	if strings.TrimSpace(pet.Name) == "" {
		writeError(w, r, http.StatusMethodNotAllowed, "Invalid input: name is required")
		return
	}
	writeBody(w, r, http.StatusOK, s.store.Put(pet))
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	pet, err := decodePet(r)
	if err != nil {
		writeError(w, r, http.StatusMethodNotAllowed, "Validation exception")
		return
	}
	if pet.ID <= 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	if _, ok := s.store.Get(pet.ID); !ok {
		writeError(w, r, http.StatusNotFound, "Pet not found")
		return
	}
	writeBody(w, r, http.StatusOK, s.store.Put(pet))
}

func (s *Server) findPetsByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query()["status"]
	if len(status) == 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid status value")
		return
	}
	writeBody(w, r, http.StatusOK, s.store.FindByStatus(status))
}

func (s *Server) findPetsByTags(w http.ResponseWriter, r *http.Request) {
	tags := r.URL.Query()["tags"]
	if len(tags) == 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid tag value")
		return
	}
	writeBody(w, r, http.StatusOK, s.store.FindByTags(tags))
}

func (s *Server) getPetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	pet, found := s.store.Get(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "Pet not found")
		return
	}
	writeBody(w, r, http.StatusOK, pet)
}

func (s *Server) updatePetWithForm(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusMethodNotAllowed, "Invalid input")
		return
	}
	_, found := s.store.Update(id, func(p *domain.Pet) {
		if r.PostForm.Has("name") {
			p.Name = r.PostForm.Get("name")
		}
		if r.PostForm.Has("status") {
			p.Status = domain.PetStatus(r.PostForm.Get("status"))
		}
	})
	if !found {
		writeError(w, r, http.StatusNotFound, "Pet not found")
		return
	}
	writeBody(w, r, http.StatusOK, domain.ApiResponse{Code: http.StatusOK, Type: "unknown", Message: strconv.FormatInt(id, 10)})
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		writeError(w, r, http.StatusNotFound, "Pet not found")
		return
	}
	writeBody(w, r, http.StatusOK, domain.ApiResponse{Code: http.StatusOK, Type: "unknown", Message: strconv.FormatInt(id, 10)})
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	if _, found := s.store.Get(id); !found {
		writeError(w, r, http.StatusNotFound, "Pet not found")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart/form-data body required")
		return
	}

	upload := Upload{PetID: id, Metadata: r.FormValue("additionalMetadata")}
	if file, header, err := r.FormFile("file"); err == nil {
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unreadable file part")
			return
		}
		upload.Filename = header.Filename
		upload.Size = len(data)
	}
	s.store.RecordUpload(upload)

	msg := fmt.Sprintf("additionalMetadata: %s\nFile uploaded to ./%s, %d bytes", upload.Metadata, upload.Filename, upload.Size)
	writeBody(w, r, http.StatusOK, domain.ApiResponse{Code: http.StatusOK, Type: "unknown", Message: msg})
}

func petID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petId"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid ID supplied")
		return 0, false
	}
	return id, true
}

func decodePet(r *http.Request) (domain.Pet, error) {
	var pet domain.Pet
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return pet, err
	}
	if strings.Contains(r.Header.Get("Content-Type"), "xml") {
		err = xml.Unmarshal(body, &pet)
	} else {
		err = json.Unmarshal(body, &pet)
	}
	return pet, err
}

// wantsXML negotiates the response media type. JSON wins unless XML is asked for first.
func wantsXML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	x := strings.Index(accept, "xml")
	if x < 0 {
		return false
	}
	j := strings.Index(accept, "json")
	return j < 0 || x < j
}

func writeBody(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsXML(r) {
		data, err := xml.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = w.Write(data)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeBody(w, r, status, domain.ApiResponse{Code: int32(status), Type: "error", Message: msg})
}
