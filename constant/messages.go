// Package constant 用户可见文案常量定义
// 所有发给用户的固定文案集中在这里，便于统一调整
package constant

// 注册流程提示文案
const (
	MsgAskName = "Hi! I'm your nutrition assistant. Let's set you up.\n\nWhat's your name?"

	MsgAskKnowTargets = "Nice to meet you, %s!\n\nDo you already know your daily calorie and protein targets? (yes/no)"

	MsgReAskKnowTargets = "Sorry, I didn't catch that. Please answer yes or no."

	MsgAskCaloriesTarget = "Great. What's your daily calorie target? (e.g. 2200)"

	MsgReAskCaloriesTarget = "That doesn't look like a number. Please send your calorie target, e.g. 2200"

	MsgAskProteinTarget = "And your daily protein target in grams? (e.g. 150)"

	MsgReAskProteinTarget = "That doesn't look like a number. Please send your protein target in grams, e.g. 150"

	MsgAskWeight = "No problem, I'll estimate them for you.\n\nWhat's your weight in kg? (e.g. 70)"

	MsgReAskWeight = "That doesn't look like a number. Please send your weight in kg, e.g. 70"

	MsgAskHeight = "What's your height in cm? (e.g. 175)"

	MsgReAskHeight = "That doesn't look like a number. Please send your height in cm, e.g. 175"

	MsgAskAge = "How old are you? (e.g. 30)"

	MsgReAskAge = "That doesn't look like a whole number. Please send your age, e.g. 30"

	MsgAskGoal = "Last one: what's your goal? (gain muscle / lose fat / maintain)"

	MsgRegistrationDone = "You're all set, %s!\n\nDaily targets: %s kcal, %s g protein.\n\nSend me what you eat (text, voice or photo) and I'll keep track."

	MsgWelcomeBack = "Welcome back, %s! Send me what you eat and I'll keep track. Ask for a report any time."
)

// 主模式与帮助文案
const (
	MsgHelp = "Here's what I can do:\n" +
		"- Log meals: just tell me what you ate (text, voice or photo)\n" +
		"- Update targets: e.g. \"set my calorie target to 2000\"\n" +
		"- Daily report: e.g. \"how am I doing today?\"\n" +
		"- Or just chat about nutrition\n\n" +
		"/start resets your registration."

	MsgGenericChatReply = "Got it! Tell me about your meals, or ask for a report."

	MsgUpdateClarify = "I couldn't tell which target you want to change. Try something like \"set my calorie target to 2000\" or \"protein target 140\"."

	MsgReportBadDate = "I couldn't read that date. Please use the YYYY-MM-DD format, e.g. 2024-05-01."
)

// 对外部协作方失败的固定道歉文案，按失败点区分
const (
	MsgApologyLLM = "Sorry, I'm having trouble thinking right now. Please try again in a moment."

	MsgApologyStore = "Sorry, I couldn't save that. Please try again in a moment."

	MsgApologyTranscribe = "Sorry, I couldn't understand that voice message. Could you type it instead?"

	MsgApologyAnalyze = "Sorry, I couldn't figure out what's on that photo. Could you describe the meal in text?"

	MsgApologyDownload = "Sorry, I couldn't download that file. Please try sending it again."
)

// 报表相关固定文案
const (
	MsgReportNoProfile = "I don't have a profile for you yet. Send /start to set one up."

	MsgReportNoMeals = "No meals logged for %s yet. Tell me what you ate and I'll start tracking."
)
