package twse

// StockInfoResponse - ответ getStockInfo.jsp. Из всего payload нам нужен
// только msgArray: пустой массив означает неизвестный код бумаги.
type StockInfoResponse struct {
	MsgArray []struct {
		Symbol    string `json:"c"` // Код бумаги, "2330"
		Name      string `json:"n"` // Название
		LastPrice string `json:"z"` // Цена последней сделки; "-" или "0" = сделок нет
	} `json:"msgArray"`
}
