package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-seat-reservation/internal/model"
    "github.com/iliyamo/train-seat-reservation/internal/service"
    "github.com/iliyamo/train-seat-reservation/internal/store"
)

func newSeatHandler(t *testing.T, caps ...uint32) (*SeatHandler, *store.MemoryStore) {
    t.Helper()
    if len(caps) == 0 {
        caps = model.DefaultRowCapacities()
    }
    st := store.NewMemoryStore()
    _, err := st.CreateChart(context.Background(), caps)
    require.NoError(t, err)
    return NewSeatHandler(service.NewReservationService(st), st), st
}

// post runs a handler the way the JWT middleware would: user_id
// already placed in the context.
func post(t *testing.T, h echo.HandlerFunc, target, body string, userID uint64, params ...string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", userID)
    for i := 0; i+1 < len(params); i += 2 {
        c.SetParamNames(params[i])
        c.SetParamValues(params[i+1])
    }
    require.NoError(t, h(c))
    return rec
}

func TestListSeats(t *testing.T) {
    h, st := newSeatHandler(t, 3)
    _, err := st.ReserveSeats(context.Background(), []uint64{1}, 42)
    require.NoError(t, err)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/seats", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.ListSeats(e.NewContext(req, rec)))

    require.Equal(t, http.StatusOK, rec.Code)
    var resp struct {
        Seats           []model.Seat `json:"seats"`
        UnreservedCount int          `json:"unreserved_count"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Len(t, resp.Seats, 3)
    assert.Equal(t, 2, resp.UnreservedCount)
}

func TestReserveSeatsStatusMapping(t *testing.T) {
    h, _ := newSeatHandler(t, 3)

    rec := post(t, h.ReserveSeats, "/v1/seats/reserve", `{"count":0}`, 1)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = post(t, h.ReserveSeats, "/v1/seats/reserve", `{"count":2}`, 1)
    require.Equal(t, http.StatusCreated, rec.Code)
    var resp struct {
        Seats []model.Seat `json:"seats"`
        Count int          `json:"count"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, 2, resp.Count)

    // One free seat left: asking for three is a capacity conflict.
    rec = post(t, h.ReserveSeats, "/v1/seats/reserve", `{"count":3}`, 2)
    assert.Equal(t, http.StatusConflict, rec.Code)

    rec = post(t, h.ReserveSeats, "/v1/seats/reserve", `{"count":1}`, 2)
    require.Equal(t, http.StatusCreated, rec.Code)

    rec = post(t, h.ReserveSeats, "/v1/seats/reserve", `{"count":1}`, 3)
    assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelSeatStatusMapping(t *testing.T) {
    h, st := newSeatHandler(t, 3)
    _, err := st.ReserveSeats(context.Background(), []uint64{1}, 42)
    require.NoError(t, err)

    rec := post(t, h.CancelSeat, "/v1/seats/99/cancel", "", 42, "id", "99")
    assert.Equal(t, http.StatusNotFound, rec.Code)

    rec = post(t, h.CancelSeat, "/v1/seats/2/cancel", "", 42, "id", "2")
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = post(t, h.CancelSeat, "/v1/seats/1/cancel", "", 7, "id", "1")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = post(t, h.CancelSeat, "/v1/seats/1/cancel", "", 42, "id", "1")
    require.Equal(t, http.StatusOK, rec.Code)
    var seat model.Seat
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seat))
    assert.Nil(t, seat.ReservedBy)

    rec = post(t, h.CancelSeat, "/v1/seats/abc/cancel", "", 42, "id", "abc")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSeatEndpoints(t *testing.T) {
    h, st := newSeatHandler(t, 3)
    _, err := st.ReserveSeats(context.Background(), []uint64{1, 2}, 42)
    require.NoError(t, err)

    rec := post(t, h.ResetSeats, "/v1/seats/reset", "", 1)
    require.Equal(t, http.StatusOK, rec.Code)
    var reset struct {
        ReleasedCount int64 `json:"released_count"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reset))
    assert.Equal(t, int64(2), reset.ReleasedCount)

    rec = post(t, h.InitializeSeats, "/v1/seats/initialize", `{"row_capacities":[2,2]}`, 1)
    require.Equal(t, http.StatusCreated, rec.Code)

    seats, err := st.ListSeats(context.Background())
    require.NoError(t, err)
    assert.Len(t, seats, 4)

    rec = post(t, h.InitializeSeats, "/v1/seats/initialize", `{"row_capacities":[0]}`, 1)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
