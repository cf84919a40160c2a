package responder

// DefaultRules returns the rule table. Order matters: keywords overlap
// ("rules" also contains "rule", "osnabrück" is checked before generic terms).
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "osnabrueck_courts",
			Match: ContainsAll("osnabrück", "court"),
			Reply: "There are several beachvolleyball courts across Osnabrück, for example in Wüste, Nahne and at Klushügel!",
		},
		{
			Name:  "osnabrueck_league",
			Match: ContainsAll("osnabrück", "tournament"),
			Reply: "There is a beachvolleyball league in Osnabrück! Checkout at www.instagram.com/beachliga_os/!",
		},
		{
			Name:  "rules",
			Match: Contains("rule", "rules"),
			Reply: "You can read/download the newest regulation at www.fivb.com/beach-volleyball/the-game/official-rules-of-the-games/.",
		},
		{
			Name:  "streaming",
			Match: ContainsAll("professional", "watch"),
			Reply: "The German Beach Tour can be watched for free. Checkout Spontent on Twitch!",
		},
		{
			Name:  "float_serve",
			Match: Contains("float"),
			Reply: "A serve with minimal spin, causing the ball to move unpredictably in the air, making it difficult for the receiver to track.",
		},
		{
			Name:  "topspin_serve",
			Match: Contains("top spin"),
			Reply: "A serve with heavy spin that dips quickly, making it more challenging for the opponent to pass due to its fast downward trajectory.",
		},
		{
			Name:  "block",
			Match: Contains("block"),
			Reply: "A defensive technique where players jump near the net to intercept or deflect an opponent's attack.",
		},
		{
			Name:  "pass",
			Match: Contains("pass"),
			Reply: "A fundamental technique for receiving the serve or attack, typically executed using the forearms to direct the ball to the setter.",
		},
		{
			Name:  "set",
			Match: Contains("set"),
			Reply: "The act of using the hands to deliver an accurate ball to a teammate, typically in preparation for an attack.",
		},
		{
			Name:  "spike",
			Match: Contains("spike"),
			Reply: "An offensive move where a player jumps and hits the ball with force, aiming for a spot on the opponent’s court.",
		},
		{
			Name:  "dig",
			Match: Contains("digger"),
			Reply: "A defensive move to receive and control a hard-hit ball, typically done using the forearms or with an open hand technique.",
		},
		{
			Name:  "roll_shot",
			Match: Contains("roll shot"),
			Reply: "A softer attack technique where the ball is hit with minimal spin, often used to place the ball in a strategic location over the block.",
		},
		{
			Name:  "cut_shot",
			Match: Contains("cut shot"),
			Reply: " A shot made with a quick wrist movement, causing the ball to curve sharply and land in the opponent’s court, usually to one side.",
		},
		{
			Name:  "jump_serve",
			Match: Contains("jump serve"),
			Reply: " A powerful serve executed by jumping and striking the ball in mid-air, typically generating more speed and spin than a regular serve.",
		},
	}
}
