package transport

// Wire types for the subset of the Telegram Bot API this bot consumes.

// Update is one inbound event: either a text message or a callback selection.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// ReplyKeyboard renders a static grid of choice buttons.
type ReplyKeyboard struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard,omitempty"`
	ResizeKeyboard  bool               `json:"resize_keyboard,omitempty"`
}

type KeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardRemove clears a previously rendered reply keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// InlineKeyboard renders buttons bound to opaque callback tokens.
type InlineKeyboard struct {
	InlineKeyboard [][]InlineButton `json:"inline_keyboard"`
}

type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// ChoiceGrid lays out labels two per row, the way pick lists are rendered
// throughout the bot.
func ChoiceGrid(labels []string) ReplyKeyboard {
	var rows [][]KeyboardButton
	for i := 0; i < len(labels); i += 2 {
		row := []KeyboardButton{{Text: labels[i]}}
		if i+1 < len(labels) {
			row = append(row, KeyboardButton{Text: labels[i+1]})
		}
		rows = append(rows, row)
	}
	return ReplyKeyboard{Keyboard: rows, OneTimeKeyboard: true, ResizeKeyboard: true}
}
