package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/extract"
	"github.com/mathieu/applyassist/internal/fetch"
	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/profile"
	"github.com/mathieu/applyassist/internal/ranking"
	"github.com/mathieu/applyassist/internal/types"
)

// ParseProfileRequest carries a CV either as plain text or as an encoded
// document to run through the extractor.
type ParseProfileRequest struct {
	RawText  string `json:"raw_text,omitempty"`
	Filename string `json:"filename,omitempty"`
	Data     []byte `json:"data,omitempty"` // base64 in JSON
}

// RankRequest is the body for POST /rank. Offers is optional; when absent
// the server's configured offer source supplies the catalog.
type RankRequest struct {
	Profile *types.CandidateProfile `json:"profile"`
	Offers  []types.RawOffer        `json:"offers,omitempty"`
	TopN    int                     `json:"top_n,omitempty"`
	Filters ranking.Filters         `json:"filters,omitempty"`
}

// RankResponse is the body for POST /rank responses
type RankResponse struct {
	Results []types.MatchResult `json:"results"`
}

// LetterRequest is the body for POST /letters. Either Offer or OfferID must
// be set; OfferID selects an offer from the configured source.
type LetterRequest struct {
	Profile *types.CandidateProfile `json:"profile"`
	Offer   types.RawOffer          `json:"offer,omitempty"`
	OfferID string                  `json:"offer_id,omitempty"`
	Note    string                  `json:"note,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParseProfile(w http.ResponseWriter, r *http.Request) {
	var req ParseProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rawText := req.RawText
	if rawText == "" {
		if len(req.Data) == 0 {
			s.errorResponse(w, http.StatusBadRequest, "either raw_text or filename+data is required")
			return
		}
		text, err := extract.Text(req.Filename, req.Data)
		if err != nil {
			s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		rawText = text
	}

	s.jsonResponse(w, http.StatusOK, profile.Parse(rawText))
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "profile is required")
		return
	}

	catalog := req.Offers
	if catalog == nil {
		var err error
		catalog, err = s.listOffers(r)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "failed to load offer catalog: "+err.Error())
			return
		}
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.topN
	}

	results := s.coordinator.RankOffers(r.Context(), req.Profile, catalog, topN, req.Filters)
	s.jsonResponse(w, http.StatusOK, RankResponse{Results: results})
}

func (s *Server) handleGenerateLetter(w http.ResponseWriter, r *http.Request) {
	var req LetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "profile is required")
		return
	}

	rawOffer := req.Offer
	if rawOffer == nil {
		if req.OfferID == "" {
			s.errorResponse(w, http.StatusBadRequest, "either offer or offer_id is required")
			return
		}
		catalog, err := s.listOffers(r)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "failed to load offer catalog: "+err.Error())
			return
		}
		for _, candidate := range catalog {
			if offers.Resolve(candidate, offers.FieldID) == req.OfferID {
				rawOffer = candidate
				break
			}
		}
		if rawOffer == nil {
			s.errorResponse(w, http.StatusNotFound, "offer not found: "+req.OfferID)
			return
		}
	}

	letter := s.coordinator.GenerateLetter(r.Context(), req.Profile, rawOffer, req.Note)

	if s.store != nil {
		offerID := offers.Resolve(rawOffer, offers.FieldID)
		if _, err := s.store.SaveApplication(r.Context(), req.Profile.Name, offerID, letter); err != nil {
			// Persistence is best-effort; the letter is still returned.
			s.logger.Warn("failed to save application", zap.String("offer_id", offerID), zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, letter)
}

// FetchOfferRequest is the body for POST /offers/fetch
type FetchOfferRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleFetchOffer(w http.ResponseWriter, r *http.Request) {
	var req FetchOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	offer, err := fetch.Offer(r.Context(), req.URL, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, offer)
}

func (s *Server) listOffers(r *http.Request) ([]types.RawOffer, error) {
	if s.source == nil {
		return nil, nil
	}
	return s.source.ListOffers(r.Context())
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
