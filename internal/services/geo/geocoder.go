package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAddressNotFound - геокодер не нашел адрес
var ErrAddressNotFound = errors.New("address not found")

// Geocoder - клиент Яндекс.Геокодера: адрес -> координаты и обратно.
type Geocoder struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

func NewGeocoder(apiKey string) *Geocoder {
	return &Geocoder{
		APIKey:  apiKey,
		BaseURL: "https://geocode-maps.yandex.ru/1.x/",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
					MetaDataProperty struct {
						GeocoderMetaData struct {
							Text string `json:"text"`
						} `json:"GeocoderMetaData"`
					} `json:"metaDataProperty"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode преобразует адрес в координаты (широта, долгота)
func (g *Geocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	address = strings.TrimSpace(address)
	if g.APIKey == "" || address == "" {
		return 0, 0, ErrAddressNotFound
	}

	params := url.Values{}
	params.Set("apikey", g.APIKey)
	params.Set("geocode", address)
	params.Set("format", "json")
	params.Set("results", "1")
	params.Set("lang", "ru_RU")

	body, err := g.get(ctx, params)
	if err != nil {
		return 0, 0, err
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return 0, 0, ErrAddressNotFound
	}

	// Формат pos: "долгота широта"
	var lon, lat float64
	if _, err := fmt.Sscanf(members[0].GeoObject.Point.Pos, "%f %f", &lon, &lat); err != nil {
		return 0, 0, ErrAddressNotFound
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, ErrAddressNotFound
	}
	return lat, lon, nil
}

// ReverseGeocode преобразует координаты в адрес
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if g.APIKey == "" {
		return "", ErrAddressNotFound
	}

	params := url.Values{}
	params.Set("apikey", g.APIKey)
	params.Set("geocode", fmt.Sprintf("%f,%f", lon, lat))
	params.Set("format", "json")
	params.Set("results", "1")
	params.Set("lang", "ru_RU")
	params.Set("kind", "house")

	body, err := g.get(ctx, params)
	if err != nil {
		return "", err
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return "", ErrAddressNotFound
	}
	text := members[0].GeoObject.MetaDataProperty.GeocoderMetaData.Text
	if text == "" {
		return "", ErrAddressNotFound
	}
	return text, nil
}

func (g *Geocoder) get(ctx context.Context, params url.Values) (*geocoderResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
	}

	var body geocoderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &body, nil
}
