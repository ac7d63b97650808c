package notify

import "arlan-hq/meridian/pkg/catalog"

// builtinTemplates holds the default push template per product. Amounts
// arrive pre-formatted with the currency symbol.
var builtinTemplates = map[catalog.Product]string{
	catalog.TravelCard: `{{.Name}}, over the last three months you spent {{.TravelSpend}} on travel, hotels, and taxis. With the Travel Card that activity would have returned about {{.Benefit}} per month in cashback. Open the card in the app and keep a share of every trip.`,

	catalog.PremiumCard: `{{.Name}}, with a balance of {{.Balance}} you qualify for the Premium Card's top cashback tier. Restaurants, cosmetics, and jewelry earn extra, and transfers plus ATM withdrawals go fee-free. Expected benefit: around {{.Benefit}} monthly.`,

	catalog.CreditCard: `{{.Name}}, your biggest spending goes to {{.Cat1}}, {{.Cat2}}, and {{.Cat3}}. The Credit Card pays up to 10% back in your favorite categories and on online services, worth about {{.Benefit}} a month, with up to 2 months interest-free on purchases.`,

	catalog.FXExchange: `{{.Name}}, you exchanged {{.FXVolume}} in the last three months. In the app you get a better rate with no hidden spread and automatic purchases at your target rate, saving you around {{.Benefit}} every month. Set your target rate today.`,

	catalog.CashLoan: `{{.Name}}, when expenses outpace income a cash loan with a fair rate keeps your plans on track. You get a quick decision in the app, early repayment without penalties, and flexible payments, saving around {{.Benefit}} against alternatives monthly.`,

	catalog.MulticurrencyDeposit: `{{.Name}}, keep your money working in several currencies at once. The multicurrency deposit pays 14.5% with instant access and free conversion between currencies, earning you about {{.Benefit}} a month on your current balance of {{.Balance}}.`,

	catalog.SavingsDeposit: `{{.Name}}, your balance of {{.Balance}} could be earning more. The savings deposit pays the top 16.5% rate with deposit protection, adding about {{.Benefit}} every month. Open it in two taps in the app and watch the interest arrive.`,

	catalog.AccumulationDeposit: `{{.Name}}, you regularly have money left over each month. The accumulation deposit at 15.5% lets you top up anytime and builds a reserve automatically, earning around {{.Benefit}} monthly. Start with any amount and add as you go.`,

	catalog.Investments: `{{.Name}}, start investing from small amounts with zero commission on trades in the first year. A conservative portfolio from your current balance could return about {{.Benefit}} per month. Open a brokerage account in the app in a few minutes.`,

	catalog.GoldBars: `{{.Name}}, gold bars protect savings from inflation and currency swings. With your balance of {{.Balance}}, an allocation to gold could add about {{.Benefit}} a month in appreciation, with secure storage available in the app. Diversify today.`,
}
