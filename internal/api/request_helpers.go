package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/config"
	"github.com/phrazzld/pagamentos-api/internal/domain"
)

const codigoParam = "codigo"

// pathCodigo extracts the positive integer identifier from the {codigo}
// path parameter.
func pathCodigo(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, codigoParam)
	if raw == "" {
		return 0, domain.NewValidationError(codigoParam, domain.MsgObrigatorio)
	}

	codigo, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || codigo <= 0 {
		return 0, domain.NewValidationError(codigoParam, "deve ser um número inteiro positivo")
	}
	return codigo, nil
}

// parsePageRequest reads page, size and any number of sort parameters.
// Missing values fall back to the configured defaults and size is capped
// at the configured maximum.
func parsePageRequest(r *http.Request, cfg config.PaginationConfig, sortable []string) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.PageRequest{Page: 0, Size: cfg.DefaultSize}
	verr := &domain.ValidationError{}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			verr.Add("page", "deve ser um número inteiro maior ou igual a 0")
		} else {
			req.Page = page
		}
	}

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			verr.Add("size", "deve ser um número inteiro maior que 0")
		} else {
			req.Size = min(size, cfg.MaxSize)
		}
	}

	// Offset is Page*Size and must fit in an int.
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		verr.Add("page", "deve ser no máximo "+strconv.Itoa(math.MaxInt/req.Size))
	}

	for _, raw := range q["sort"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		order, err := domain.ParseSortOrder(raw, sortable)
		if err != nil {
			verr.Add("sort", "deve ser um de: "+strings.Join(sortable, ", "))
			continue
		}
		req.Sort = append(req.Sort, order)
	}

	if err := verr.ErrOrNil(); err != nil {
		return domain.PageRequest{}, err
	}
	return req, nil
}

// optionalDate parses a yyyy-MM-dd query parameter. An absent or empty
// parameter yields nil.
func optionalDate(r *http.Request, name string) (*domain.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "deve estar no formato yyyy-MM-dd")
	}
	return &d, nil
}

// lancamentoFilter builds the search criteria shared by the lancamento
// listing endpoints.
func lancamentoFilter(r *http.Request) (domain.LancamentoFilter, error) {
	filter := domain.LancamentoFilter{
		Descricao: strings.TrimSpace(r.URL.Query().Get("descricao")),
	}
	verr := &domain.ValidationError{}

	de, err := optionalDate(r, "dataVencimentoDe")
	if err != nil {
		verr.Fields = append(verr.Fields, asValidation(err).Fields...)
	}
	ate, err := optionalDate(r, "dataVencimentoAte")
	if err != nil {
		verr.Fields = append(verr.Fields, asValidation(err).Fields...)
	}

	if de != nil && ate != nil && de.After(*ate) {
		verr.Add("dataVencimentoDe", "deve ser anterior ou igual a dataVencimentoAte")
	}

	if err := verr.ErrOrNil(); err != nil {
		return domain.LancamentoFilter{}, err
	}
	filter.DataVencimentoDe = de
	filter.DataVencimentoAte = ate
	return filter, nil
}

func asValidation(err error) *domain.ValidationError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return domain.NewValidationError("", err.Error())
}

// decodeBody decodes the JSON body into v and writes the error response
// when the body is absent or malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgCorpoAusente, err)
			return false
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			shared.RespondWithValidationError(w, r, verr)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgFormatoInvalido, err)
		return false
	}
	return true
}

// resourceLocation is the path of a newly created child of the request
// collection, used for the Location header.
func resourceLocation(r *http.Request, codigo int64) string {
	return strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.FormatInt(codigo, 10)
}
