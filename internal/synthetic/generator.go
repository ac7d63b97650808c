package synthetic

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"arlan-hq/meridian/pkg/features"
)

var firstNames = []string{
	"Aigerim", "Daniyar", "Madina", "Arman", "Zarina",
	"Nurlan", "Aizhan", "Timur", "Saule", "Yerlan",
}

var lastNames = []string{
	"Bekova", "Suleimenov", "Akhmetova", "Nurpeisov", "Kairatova",
	"Omarov", "Dauletova", "Zhaksybekov", "Mukanova", "Tulegenov",
}

var cities = []string{"Almaty", "Astana", "Shymkent", "Karaganda", "Aktobe"}

var spendCategories = []string{
	features.CategoryTravel, features.CategoryHotels, features.CategoryTaxi,
	features.CategoryRestaurants, features.CategoryGroceries, features.CategoryGas,
	features.CategoryClothing, features.CategoryEntertainment, features.CategoryCinema,
	features.CategoryCosmetics, features.CategoryJewelry, features.CategoryFoodDelivery,
	features.CategoryStreaming, features.CategoryGaming,
}

// profile shapes a client archetype so the population is not uniform.
type profile struct {
	name          string
	balanceMin    float64
	balanceMax    float64
	spendScale    float64
	fxProbability float64
	salaryMin     float64
	salaryMax     float64
}

var profiles = []profile{
	{"student", 20_000, 300_000, 0.4, 0.05, 80_000, 200_000},
	{"salaried", 150_000, 1_500_000, 1.0, 0.15, 250_000, 600_000},
	{"affluent", 1_000_000, 8_000_000, 2.5, 0.35, 600_000, 2_000_000},
	{"trader", 300_000, 3_000_000, 1.2, 0.9, 300_000, 900_000},
}

// Generate returns n seeded client feature records.
func Generate(n int, seed int64) []*features.ClientFeatures {
	rng := rand.New(rand.NewSource(seed))

	out := make([]*features.ClientFeatures, 0, n)
	for i := 0; i < n; i++ {
		p := profiles[rng.Intn(len(profiles))]
		balance := p.balanceMin + rng.Float64()*(p.balanceMax-p.balanceMin)

		spend := make(map[string]float64)
		for _, cat := range spendCategories {
			if rng.Float64() < 0.6 {
				spend[cat] = rng.Float64() * 120_000 * p.spendScale
			}
		}

		transfers := map[string]float64{
			features.TransferSalaryIn: p.salaryMin + rng.Float64()*(p.salaryMax-p.salaryMin),
			features.TransferP2POut:   rng.Float64() * 300_000,
			features.TransferCardOut:  rng.Float64() * 200_000,
		}
		if rng.Float64() < p.fxProbability {
			transfers[features.TransferFXBuy] = rng.Float64() * 400_000
			transfers[features.TransferFXSell] = rng.Float64() * 200_000
		}

		out = append(out, &features.ClientFeatures{
			ClientCode: int64(i + 1),
			Name:       firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			Status:     p.name,
			Age:        18 + rng.Intn(50),
			City:       cities[rng.Intn(len(cities))],
			Balance:    balance,
			Spend:      spend,
			Transfers:  transfers,
		})
	}
	return out
}

// WriteCSV writes the three input datasets for n seeded clients into the
// given paths. Spend and transfer totals are split into a few rows each
// so ingestion has something to aggregate.
func WriteCSV(clientsPath, transactionsPath, transfersPath string, n int, seed int64) error {
	clients := Generate(n, seed)
	rng := rand.New(rand.NewSource(seed + 1))

	if err := writeRows(clientsPath,
		[]string{"client_code", "name", "status", "age", "city", "avg_monthly_balance_KZT"},
		func(w *csv.Writer) error {
			for _, c := range clients {
				row := []string{
					strconv.FormatInt(c.ClientCode, 10),
					c.Name, c.Status, strconv.Itoa(c.Age), c.City,
					strconv.FormatFloat(c.Balance, 'f', 0, 64),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
		return err
	}

	if err := writeRows(transactionsPath,
		[]string{"client_code", "date", "category", "amount", "currency"},
		func(w *csv.Writer) error {
			for _, c := range clients {
				for cat, total := range c.Spend {
					for _, part := range split(total, 1+rng.Intn(4)) {
						row := []string{
							strconv.FormatInt(c.ClientCode, 10),
							randomDate(rng), cat,
							strconv.FormatFloat(part, 'f', 2, 64), "KZT",
						}
						if err := w.Write(row); err != nil {
							return err
						}
					}
				}
			}
			return nil
		}); err != nil {
		return err
	}

	return writeRows(transfersPath,
		[]string{"client_code", "date", "type", "amount", "currency"},
		func(w *csv.Writer) error {
			for _, c := range clients {
				for kind, total := range c.Transfers {
					for _, part := range split(total, 1+rng.Intn(3)) {
						row := []string{
							strconv.FormatInt(c.ClientCode, 10),
							randomDate(rng), kind,
							strconv.FormatFloat(part, 'f', 2, 64), "KZT",
						}
						if err := w.Write(row); err != nil {
							return err
						}
					}
				}
			}
			return nil
		})
}

func writeRows(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := body(w); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// split divides a total into parts that sum back to it.
func split(total float64, parts int) []float64 {
	out := make([]float64, parts)
	rest := total
	for i := 0; i < parts-1; i++ {
		out[i] = rest / 2
		rest -= out[i]
	}
	out[parts-1] = rest
	return out
}

func randomDate(rng *rand.Rand) string {
	month := 6 + rng.Intn(3)
	day := 1 + rng.Intn(28)
	hour := rng.Intn(24)
	return fmt.Sprintf("2025-%02d-%02d %02d:00:00", month, day, hour)
}
