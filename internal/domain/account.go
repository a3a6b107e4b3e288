package domain

import "github.com/shopspring/decimal"

// Funds는 통화별 잔고입니다 (키: jpy, btc 등)
type Funds map[string]decimal.Decimal

// Rights는 API 키에 부여된 권한입니다 (1: 허용, 0: 불가)
type Rights struct {
	Info         int `json:"info"`
	Trade        int `json:"trade"`
	Withdraw     int `json:"withdraw"`
	PersonalInfo int `json:"personal_info"`
	IDInfo       int `json:"id_info"`
}

// AccountInfo는 get_info / get_info2 응답을 표현합니다
type AccountInfo struct {
	Funds      Funds    `json:"funds"`       // 미체결 주문분을 제외한 잔고
	Deposit    Funds    `json:"deposit"`     // 미체결 주문분을 포함한 잔고
	Rights     Rights   `json:"rights"`      // 권한
	TradeCount int      `json:"trade_count"` // 체결 횟수 (get_info2에서는 0)
	OpenOrders int      `json:"open_orders"` // 미체결 주문 수
	ServerTime UnixTime `json:"server_time"` // 서버 시간
}

// PersonalInfo는 get_personal_info 응답을 표현합니다
type PersonalInfo struct {
	RankingNickname string `json:"ranking_nickname"`
	IconPath        string `json:"icon_path"`
}

// IDInfo는 get_id_info 응답을 표현합니다
type IDInfo struct {
	User struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Kana      string `json:"kana"`
		Certified bool   `json:"certified"`
	} `json:"user"`
}

// TransferRecord는 입금/출금 이력의 한 건입니다
type TransferRecord struct {
	Timestamp UnixTime        `json:"timestamp"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	TxID      string          `json:"txid"`
}

// WithdrawRequest는 출금 요청 정보입니다
type WithdrawRequest struct {
	Currency string          // 통화 (예: btc)
	Address  string          // 송금처 주소
	Message  string          // 메모 (xem 전용, 선택)
	Amount   decimal.Decimal // 수량
	OptFee   decimal.Decimal // 채굴 수수료 (선택, 0이면 생략)
}

// WithdrawResult는 withdraw 응답을 표현합니다
type WithdrawResult struct {
	ID    int64           `json:"id"`
	TxID  string          `json:"txid"`
	Fee   decimal.Decimal `json:"fee"`
	Funds Funds           `json:"funds"`
}
