package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Локальная заглушка TWSE MIS для отладки бота без выхода в сеть.
// Отдает тот же JSON, что и getStockInfo.jsp: цена гуляет случайным шагом
// вокруг стартовой, так что пороги ±5% пробиваются за несколько циклов.
//
// Специальные коды для ручной проверки ошибок:
//   9998 - сделок нет (z = "-")
//   9999 - неизвестная бумага (пустой msgArray)
//
// Запуск: go run ./cmd/mockquote, бот - с QUOTE_BASE_URL=http://localhost:18080

const listenAddr = ":18080"

var (
	mu     sync.Mutex
	prices = map[string]decimal.Decimal{}

	startPrice = decimal.RequireFromString("150.00")
	maxStep    = decimal.RequireFromString("3.00")
)

func main() {
	http.HandleFunc("/getStockInfo.jsp", handleStockInfo)

	fmt.Printf("[Mock] Фейковый TWSE MIS слушает на %s\n", listenAddr)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatal("сервер не стартовал:", err)
	}
}

func handleStockInfo(w http.ResponseWriter, r *http.Request) {
	// ex_ch приходит как "tse_2330.tw"
	exCh := r.URL.Query().Get("ex_ch")
	symbol := strings.TrimSuffix(strings.TrimPrefix(exCh, "tse_"), ".tw")

	w.Header().Set("Content-Type", "application/json")

	type quoteRow struct {
		Symbol    string `json:"c"`
		Name      string `json:"n"`
		LastPrice string `json:"z"`
	}
	var resp struct {
		MsgArray []quoteRow `json:"msgArray"`
	}

	switch symbol {
	case "", "9999":
		// Неизвестный код - биржа отвечает пустым msgArray
		resp.MsgArray = []quoteRow{}
	case "9998":
		resp.MsgArray = []quoteRow{{Symbol: symbol, Name: "no-trade", LastPrice: "-"}}
	default:
		resp.MsgArray = []quoteRow{{Symbol: symbol, Name: "mock-" + symbol, LastPrice: nextPrice(symbol).StringFixed(2)}}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка записи ответа:", err)
	}
}

// nextPrice делает случайный шаг в пределах ±maxStep от предыдущей цены
func nextPrice(symbol string) decimal.Decimal {
	mu.Lock()
	defer mu.Unlock()

	price, ok := prices[symbol]
	if !ok {
		price = startPrice
	}

	step := maxStep.Mul(decimal.NewFromFloat(rand.Float64()*2 - 1)).Round(2)
	price = price.Add(step)
	if price.LessThanOrEqual(decimal.Zero) {
		price = startPrice
	}

	prices[symbol] = price
	return price
}
