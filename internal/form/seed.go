package form

import "github.com/Akash-N-Exotel/botcepter/internal/bots"

// seedState is the built-in form used whenever no valid persisted state exists.
var seedState = FormState{
	BotKind:       bots.KindChat,
	SelectedBotID: "test_bot_1",
	TestRunCount:  1,
	NumQuestions:  5,
	Questions: []Question{
		{
			Text:           "i need to know what all item was picked up",
			ExpectedAnswer: "your order involve ",
			Objectives:     []string{"Handle_Order_Related_Queries"},
			Tools:          []string{"answer_order_related_queries"},
		},
		{
			Text:           "i need to know the order status again",
			ExpectedAnswer: "The weather is sunny with a high of 25 degrees.",
			Objectives:     []string{"Handle_Order_Related_Queries"},
			Tools:          []string{"get_order_status"},
		},
		{
			Text:           "i want to cancel the order",
			ExpectedAnswer: "The weather is sunny with a high of 25 degrees.",
			Objectives:     []string{"Handle_Order_Cancellation_Queries"},
			Tools:          []string{"get_order_cancellation_details"},
		},
		{
			Text:           "what is the status of my refund",
			ExpectedAnswer: "Let me check your refund status.",
			Objectives:     []string{"Handle_Refund_Queries"},
			Tools:          []string{"check_refund_status"},
		},
		{
			Text:           "i want to modify my delivery address",
			ExpectedAnswer: "I can help you update your delivery address.",
			Objectives:     []string{"Handle_Delivery_Modification"},
			Tools:          []string{"update_delivery_address"},
		},
	},
}

// SeedState returns a fresh deep copy of the built-in default form.
func SeedState() FormState {
	return seedState.Clone()
}

func seedQuestions() []Question {
	return seedState.Questions
}
