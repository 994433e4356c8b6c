package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AmadeusConfig configures the shared Amadeus REST client.
type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	Env          string // "test" or "production"
	Timeout      time.Duration
}

// AmadeusClient handles OAuth2 client-credentials auth and raw requests
// against the Amadeus self-service APIs.
type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	logger       *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusClient(cfg AmadeusConfig, logger *zap.Logger) *AmadeusClient {
	baseURL := "https://api.amadeus.com"
	if cfg.Env == "" || cfg.Env == "test" {
		baseURL = "https://test.api.amadeus.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &AmadeusClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	c.logger.Debug("amadeus token refreshed", zap.Int("expires_in", result.ExpiresIn))
	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string) ([]byte, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("amadeus not configured")
	}

	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// priceToMinor converts an Amadeus decimal price string to minor units.
func priceToMinor(s string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int64(math.Round(f * 100))
}

// --------- Flight search provider ---------

type FlightProvider struct {
	client *AmadeusClient
}

func NewFlightProvider(client *AmadeusClient) *FlightProvider {
	return &FlightProvider{client: client}
}

func (p *FlightProvider) Category() Category { return CategoryFlight }

type amadeusFlightOffersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

func (p *FlightProvider) Fetch(ctx context.Context, cons Constraints) ([]CandidateOption, error) {
	limit := cons.Limit
	if limit <= 0 {
		limit = 6
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&returnDate=%s&adults=%d&max=%d",
		url.QueryEscape(strings.ToUpper(cons.Origin)),
		url.QueryEscape(strings.ToUpper(cons.Destination)),
		url.QueryEscape(cons.StartDate.Format("2006-01-02")),
		url.QueryEscape(cons.EndDate.Format("2006-01-02")),
		cons.Travelers,
		limit,
	)

	body, err := p.client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	options := make([]CandidateOption, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}
		price := priceToMinor(offer.Price.GrandTotal)
		if price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		airline := ""
		flightNumber := ""
		if len(outbound.Segments) > 0 {
			airline = outbound.Segments[0].CarrierCode
			flightNumber = airline + outbound.Segments[0].Number
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airline = offer.ValidatingAirlineCodes[0]
		}

		stops := len(outbound.Segments) - 1
		if stops < 0 {
			stops = 0
		}

		name := fmt.Sprintf("%s %s → %s", airline, strings.ToUpper(cons.Origin), strings.ToUpper(cons.Destination))
		if flightNumber != "" {
			name = fmt.Sprintf("%s (%s)", name, flightNumber)
		}

		options = append(options, CandidateOption{
			Category:    CategoryFlight,
			ProviderID:  "amadeus-flight-" + offer.ID,
			Name:        name,
			Description: fmt.Sprintf("%d stop(s), duration %s", stops, outbound.Duration),
			PriceMinor:  price,
			Currency:    strings.ToUpper(offer.Price.Currency),
			// Non-stop itineraries rank above connections.
			Quality: math.Max(0, 5-float64(stops)*1.5),
		})
	}

	return options, nil
}

// --------- Lodging search provider ---------

type LodgingProvider struct {
	client *AmadeusClient
}

func NewLodgingProvider(client *AmadeusClient) *LodgingProvider {
	return &LodgingProvider{client: client}
}

func (p *LodgingProvider) Category() Category { return CategoryLodging }

type amadeusHotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
		GeoCode struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"geoCode"`
	} `json:"data"`
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID string `json:"hotelId"`
			Name    string `json:"name"`
			Rating  string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (p *LodgingProvider) Fetch(ctx context.Context, cons Constraints) ([]CandidateOption, error) {
	// Step 1: hotel ids (plus coordinates) for the destination city.
	listPath := fmt.Sprintf(
		"/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(strings.ToUpper(cons.Destination)))

	body, err := p.client.get(ctx, listPath)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	var list amadeusHotelListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}
	if len(list.Data) == 0 {
		return []CandidateOption{}, nil
	}

	ids := make([]string, 0, len(list.Data))
	geoByID := make(map[string]GeoPoint, len(list.Data))
	for _, h := range list.Data {
		ids = append(ids, h.HotelID)
		geoByID[h.HotelID] = GeoPoint{Lat: h.GeoCode.Latitude, Lng: h.GeoCode.Longitude}
	}
	// Rate-limit guard: the offers endpoint rejects very long id lists.
	if len(ids) > 20 {
		ids = ids[:20]
	}

	// Step 2: whole-stay offers for those hotels.
	offersPath := fmt.Sprintf(
		"/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=%d",
		url.QueryEscape(strings.Join(ids, ",")),
		url.QueryEscape(cons.StartDate.Format("2006-01-02")),
		url.QueryEscape(cons.EndDate.Format("2006-01-02")),
		cons.Travelers,
	)

	body, err = p.client.get(ctx, offersPath)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var offers amadeusHotelOffersResponse
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	options := make([]CandidateOption, 0, len(offers.Data))
	for _, entry := range offers.Data {
		if !entry.Available || len(entry.Offers) == 0 {
			continue
		}
		price := priceToMinor(entry.Offers[0].Price.Total)
		if price <= 0 {
			continue
		}

		rating, _ := strconv.ParseFloat(entry.Hotel.Rating, 64)
		if rating == 0 {
			rating = 3
		}

		option := CandidateOption{
			Category:   CategoryLodging,
			ProviderID: "amadeus-hotel-" + entry.Hotel.HotelID,
			Name:       entry.Hotel.Name,
			PriceMinor: price,
			Currency:   strings.ToUpper(entry.Offers[0].Price.Currency),
			Quality:    rating,
		}
		if geo, ok := geoByID[entry.Hotel.HotelID]; ok {
			option.Location = &geo
		}
		options = append(options, option)
	}

	return options, nil
}
